/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package ddb

import (
	"context"
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
	"github.com/go-openapi/strfmt"

	"github.com/StarCoreSE/DefinitionHelper/models"
)

// API is the subset of the DynamoDB client used by JournalStore.
type API interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// ClientConfig holds the settings used to build a DynamoDB client.
type ClientConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
}

// DefaultIndexMap lays journal records out one partition per definition type,
// sorted by sequence.
var DefaultIndexMap = map[string]string{
	"PK": "TYPE#{Type}",
	"SK": "EVT#{SequenceKey}",
}

const recordEntityType = "JournalRecord"

// JournalStore implements datastore.JournalStore on a single DynamoDB table.
type JournalStore struct {
	client     API
	tableName  string
	indexMap   map[string]string
	maxRetries int
	backoff    time.Duration
}

// journalItem is the DynamoDB item shape of a models.JournalRecord.
type journalItem struct {
	EventID      string `dynamodbav:"EventID"`
	EntityType   string `dynamodbav:"EntityType"`
	Type         string `dynamodbav:"Type"`
	Origin       string `dynamodbav:"Origin,omitempty"`
	DefinitionID string `dynamodbav:"DefinitionID"`
	Kind         string `dynamodbav:"Kind"`
	KindCode     int    `dynamodbav:"KindCode"`
	PayloadSize  int    `dynamodbav:"PayloadSize"`
	Sequence     int64  `dynamodbav:"Sequence"`
	SequenceKey  string `dynamodbav:"SequenceKey"`
	RecordedAt   string `dynamodbav:"RecordedAt"`
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewClient initializes a DynamoDB client. Static credentials are used when an
// access key is given; otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg ClientConfig) (*sdk.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewJournalStore constructs a JournalStore writing to tableName.
func NewJournalStore(client API, tableName string, maxRetries int, backoff time.Duration) *JournalStore {
	return &JournalStore{
		client:     client,
		tableName:  tableName,
		indexMap:   DefaultIndexMap,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

// Put stores record, populating the partition and sort keys from the index map.
func (s *JournalStore) Put(ctx context.Context, record models.JournalRecord) error {
	item := toItem(record)

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}

	expanded, err := expandMacros(s.indexMap, item)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}
	err = withRetry(ctx, s.maxRetries, s.backoff, func() error {
		_, err := s.client.PutItem(ctx, input)
		return err
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

func toItem(r models.JournalRecord) journalItem {
	return journalItem{
		EventID:      r.EventID,
		EntityType:   recordEntityType,
		Type:         r.Type,
		Origin:       r.Origin,
		DefinitionID: r.DefinitionID,
		Kind:         r.Kind,
		KindCode:     r.KindCode,
		PayloadSize:  r.PayloadSize,
		Sequence:     r.Sequence,
		SequenceKey:  sequenceKey(r.Sequence),
		RecordedAt:   r.RecordedAt.String(),
	}
}

func fromItem(it journalItem) (models.JournalRecord, error) {
	recordedAt, err := strfmt.ParseDateTime(it.RecordedAt)
	if err != nil {
		return models.JournalRecord{}, fmt.Errorf("invalid RecordedAt %q: %w", it.RecordedAt, err)
	}
	return models.JournalRecord{
		EventID:      it.EventID,
		Type:         it.Type,
		Origin:       it.Origin,
		DefinitionID: it.DefinitionID,
		Kind:         it.Kind,
		KindCode:     it.KindCode,
		PayloadSize:  it.PayloadSize,
		Sequence:     it.Sequence,
		RecordedAt:   recordedAt,
	}, nil
}

// sequenceKey zero-pads seq so sort keys order numerically.
func sequenceKey(seq int64) string {
	return fmt.Sprintf("%020d", seq)
}

// expandMacros replaces {Field} macros in each index map template with the
// string or number value of that field in keysInput.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			switch tv := av[strings.Trim(macro, "{}")].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}
	return res, nil
}

// expandPrefix expands the literal part of template that precedes its first macro.
func expandPrefix(template string) string {
	if loc := macroPattern.FindStringIndex(template); loc != nil {
		return template[:loc[0]]
	}
	return template
}
