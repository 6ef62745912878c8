/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/bookshelf/registry"
	"go.uber.org/zap"
)

// SlotEntityType is written to every slot item so the table can be shared with other item types.
const SlotEntityType = "Slot"

// slotItem is the DynamoDB item holding one key's value.
type slotItem struct {
	Key        string
	EntityType string
	Payload    []byte
	UpdatedAt  string
}

func init() {
	registry.MustRegisterIndexMap[slotItem](map[string]string{
		registry.PartitionKey: "SLOT#{Key}",
		registry.SortKey:      "SLOT#{Key}",
	})
}

// API is the subset of the DynamoDB client used by DynamodbDataStore.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// DynamodbDataStore implements datastore.KeyValueStore by using AWS DynamoDB as the underlying data store.
type DynamodbDataStore struct {
	client    API
	tableName string
	logger    *zap.Logger
}

// ClientConfig holds what is needed to build a DynamoDB client.
// Empty credentials fall back to the default AWS credential chain.
type ClientConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// Option configures a DynamodbDataStore
type Option func(*DynamodbDataStore)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *DynamodbDataStore) {
		if logger != nil {
			d.logger = logger
		}
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			key := strings.Trim(macro, "{}")

			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// missing, NULL, binary and set values do not take part in keys
				return ""
			}
		})
	}

	return res, nil
}

// expandStringKey replaces every macro in the index map templates with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk := expanded[registry.PartitionKey]
	sk := expanded[registry.SortKey]
	if pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		registry.PartitionKey: &types.AttributeValueMemberS{Value: pk},
		registry.SortKey:      &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// NewDynamoDBClient initializes a DynamoDB client.
func NewDynamoDBClient(ctx context.Context, cc ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cc.Region),
	}
	if cc.AccessKey != "" || cc.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKey, cc.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if cc.Endpoint != "" {
			o.BaseEndpoint = aws.String(cc.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore builds a client from cc and returns a store over tableName.
func NewDynamodbDataStore(ctx context.Context, cc ClientConfig, tableName string, opts ...Option) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	d := NewWithClient(client, tableName, opts...)
	d.logger.Info("DynamoDB datastore initialized",
		zap.String("table", tableName),
		zap.String("region", cc.Region),
	)
	return d, nil
}

// NewWithClient returns a store that uses an existing client.
func NewWithClient(client API, tableName string, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DynamodbDataStore) keyFor(key string) (map[string]types.AttributeValue, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	indexMap, ok := registry.GetIndexMap[slotItem]()
	if !ok {
		return nil, errors.New("no index map found for slot items")
	}
	return buildKeyFromExpanded(expandStringKey(indexMap, key))
}

// Load retrieves the slot item for key.
func (d *DynamodbDataStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            keyMap,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	var item slotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal slot item: %w", err)
	}
	return item.Payload, true, nil
}

// Save stores data as the slot item for key, with the key attributes expanded from the index map.
func (d *DynamodbDataStore) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("empty key")
	}
	indexMap, ok := registry.GetIndexMap[slotItem]()
	if !ok {
		return errors.New("no index map found for slot items")
	}

	item := slotItem{
		Key:        key,
		EntityType: SlotEntityType,
		Payload:    data,
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if item.Payload == nil {
		item.Payload = []byte{}
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal slot item: %w", err)
	}

	expanded, err := expandMacros(indexMap, item)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}

	d.logger.Debug("slot saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the slot item for key.
func (d *DynamodbDataStore) Remove(ctx context.Context, key string) error {
	keyMap, err := d.keyFor(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}

	d.logger.Debug("slot removed", zap.String("key", key))
	return nil
}
