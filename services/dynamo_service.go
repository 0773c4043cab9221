package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the engine uses. Tests
// substitute a fake; *dynamodb.Client satisfies it.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchGetItem(ctx context.Context, params *dynamodb.BatchGetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error)
}

type DynamoService struct {
	Client DynamoAPI
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves a single item by key. Returns (nil, nil) when the item
// does not exist so callers can map absence to their own fault.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}
	return output.Item, nil
}

// PutItem marshals and inserts an item.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// QueryWithExpression runs a key-condition query built with the expression
// package, follows LastEvaluatedKey across pages, and unmarshals every item
// into result (a pointer to a slice of structs). indexName selects a GSI
// when non-empty; scanForward=false returns newest-first for range keys
// that sort by time.
func (ds *DynamoService) QueryWithExpression(
	ctx context.Context,
	tableName string,
	indexName string,
	expr expression.Expression,
	scanForward bool,
	result interface{},
) error {
	input := &dynamodb.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(scanForward),
	}
	if indexName != "" {
		input.IndexName = &indexName
	}

	var items []map[string]types.AttributeValue
	for {
		output, err := ds.Client.Query(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to query table '%s': %w", tableName, err)
		}
		items = append(items, output.Items...)
		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}

// ScanWithExpression scans a table with a composed filter expression,
// follows LastEvaluatedKey across pages, applies an optional per-item
// callback (used for exclusion sets too large for a filter expression), and
// unmarshals the survivors into result.
func (ds *DynamoService) ScanWithExpression(
	ctx context.Context,
	tableName string,
	expr expression.Expression,
	filterFunc func(map[string]types.AttributeValue) bool,
	result interface{},
) error {
	input := &dynamodb.ScanInput{
		TableName:                 &tableName,
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	var items []map[string]types.AttributeValue
	for {
		output, err := ds.Client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan table '%s': %w", tableName, err)
		}
		for _, item := range output.Items {
			if filterFunc == nil || filterFunc(item) {
				items = append(items, item)
			}
		}
		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		return fmt.Errorf("failed to unmarshal scan result: %w", err)
	}
	return nil
}

// BatchGetItems fetches multiple items by key, chunked at 100 (the DynamoDB
// batch limit), re-requesting unprocessed keys, and unmarshals everything
// into result.
func (ds *DynamoService) BatchGetItems(
	ctx context.Context,
	tableName string,
	keys []map[string]types.AttributeValue,
	result interface{},
) error {
	const maxBatchSize = 100

	var items []map[string]types.AttributeValue
	pending := keys
	for len(pending) > 0 {
		end := maxBatchSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[:end]
		pending = pending[end:]

		output, err := ds.Client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{
				tableName: {Keys: chunk},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to batch get items from table '%s': %w", tableName, err)
		}
		items = append(items, output.Responses[tableName]...)

		// DynamoDB may return a partial batch; requeue what it skipped
		if unprocessed, ok := output.UnprocessedKeys[tableName]; ok && len(unprocessed.Keys) > 0 {
			pending = append(pending, unprocessed.Keys...)
		}
	}

	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		return fmt.Errorf("failed to unmarshal batch result: %w", err)
	}
	return nil
}
