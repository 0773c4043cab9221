package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// fakeDynamoClient satisfies DynamoAPI with function fields so each test
// scripts exactly the store behavior it needs. Call counters let tests
// assert batching behavior.
type fakeDynamoClient struct {
	getItemFn  func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItemFn  func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	queryFn    func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scanFn     func(input *dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
	batchGetFn func(input *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)

	getItemCalls  int
	putItemCalls  int
	queryCalls    int
	scanCalls     int
	batchGetCalls int
}

func (f *fakeDynamoClient) GetItem(_ context.Context, input *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getItemCalls++
	if f.getItemFn == nil {
		return nil, errors.New("unexpected GetItem call")
	}
	return f.getItemFn(input)
}

func (f *fakeDynamoClient) PutItem(_ context.Context, input *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putItemCalls++
	if f.putItemFn == nil {
		return nil, errors.New("unexpected PutItem call")
	}
	return f.putItemFn(input)
}

func (f *fakeDynamoClient) Query(_ context.Context, input *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryCalls++
	if f.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return f.queryFn(input)
}

func (f *fakeDynamoClient) Scan(_ context.Context, input *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanCalls++
	if f.scanFn == nil {
		return nil, errors.New("unexpected Scan call")
	}
	return f.scanFn(input)
}

func (f *fakeDynamoClient) BatchGetItem(_ context.Context, input *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.batchGetCalls++
	if f.batchGetFn == nil {
		return nil, errors.New("unexpected BatchGetItem call")
	}
	return f.batchGetFn(input)
}

func mustMarshalItem(t *testing.T, v interface{}) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return item
}

func mustMarshalItems(t *testing.T, vs ...interface{}) []map[string]types.AttributeValue {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(vs))
	for _, v := range vs {
		items = append(items, mustMarshalItem(t, v))
	}
	return items
}

// batchResponse wraps marshaled items into the BatchGetItem response shape
// for a single table.
func batchResponse(tableName string, items []map[string]types.AttributeValue) *dynamodb.BatchGetItemOutput {
	return &dynamodb.BatchGetItemOutput{
		Responses: map[string][]map[string]types.AttributeValue{
			tableName: items,
		},
	}
}
