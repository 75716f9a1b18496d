/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/StarCoreSE/DefinitionHelper/errors"
	"github.com/StarCoreSE/DefinitionHelper/models"
)

// Query returns the journal records of one definition type, following
// pagination until params.Limit records were read or the partition is exhausted.
func (s *JournalStore) Query(ctx context.Context, params *models.QueryParams) ([]models.JournalRecord, error) {
	if params == nil || params.Type == "" {
		return nil, errors.NewValidationError("type", "journal queries need a definition type")
	}

	keys, err := expandMacros(s.indexMap, journalItem{Type: params.Type})
	if err != nil {
		return nil, err
	}

	input := &sdk.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: keys["PK"]},
			":sk": &types.AttributeValueMemberS{Value: expandPrefix(s.indexMap["SK"])},
		},
		ScanIndexForward: aws.Bool(!params.Newest),
	}
	if params.Limit > 0 {
		input.Limit = aws.Int32(params.Limit)
	}

	var records []models.JournalRecord
	for {
		var out *sdk.QueryOutput
		err := withRetry(ctx, s.maxRetries, s.backoff, func() error {
			var qErr error
			out, qErr = s.client.Query(ctx, input)
			return qErr
		})
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}

		var items []journalItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal items: %w", err)
		}
		for _, it := range items {
			rec, err := fromItem(it)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
			if params.Limit > 0 && int32(len(records)) >= params.Limit {
				return records, nil
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
