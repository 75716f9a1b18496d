/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/require"

	"github.com/StarCoreSE/DefinitionHelper/errors"
	"github.com/StarCoreSE/DefinitionHelper/models"
)

// fakeClient keeps items in memory keyed by PK then SK.
type fakeClient struct {
	items       map[string]map[string]map[string]types.AttributeValue
	putFailures int
	putCalls    int
	pageSize    int
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeClient) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.putCalls++
	if f.putFailures > 0 {
		f.putFailures--
		return nil, &types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}
	}
	pk := in.Item["PK"].(*types.AttributeValueMemberS).Value
	sk := in.Item["SK"].(*types.AttributeValueMemberS).Value
	if f.items[pk] == nil {
		f.items[pk] = map[string]map[string]types.AttributeValue{}
	}
	f.items[pk][sk] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	pk := in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value
	prefix := in.ExpressionAttributeValues[":sk"].(*types.AttributeValueMemberS).Value

	var sks []string
	for sk := range f.items[pk] {
		if strings.HasPrefix(sk, prefix) {
			sks = append(sks, sk)
		}
	}
	sort.Strings(sks)
	if in.ScanIndexForward != nil && !*in.ScanIndexForward {
		sort.Sort(sort.Reverse(sort.StringSlice(sks)))
	}

	start := 0
	if in.ExclusiveStartKey != nil {
		last := in.ExclusiveStartKey["SK"].(*types.AttributeValueMemberS).Value
		for i, sk := range sks {
			if sk == last {
				start = i + 1
			}
		}
	}
	end := len(sks)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &sdk.QueryOutput{}
	for _, sk := range sks[start:end] {
		out.Items = append(out.Items, f.items[pk][sk])
	}
	if end < len(sks) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sks[end-1]},
		}
	}
	return out, nil
}

func record(typ string, seq int64) models.JournalRecord {
	return models.JournalRecord{
		EventID:      "evt-" + sequenceKey(seq),
		Type:         typ,
		DefinitionID: "def",
		Kind:         "CreatedOrUpdated",
		Sequence:     seq,
		RecordedAt:   strfmt.DateTime(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestExpandMacros(t *testing.T) {
	keys, err := expandMacros(DefaultIndexMap, toItem(record("ShipDef", 42)))
	require.NoError(t, err)
	require.Equal(t, "TYPE#ShipDef", keys["PK"])
	require.Equal(t, "EVT#00000000000000000042", keys["SK"])
}

func TestExpandMacrosMissingField(t *testing.T) {
	keys, err := expandMacros(map[string]string{"PK": "X#{Nope}"}, journalItem{})
	require.NoError(t, err)
	require.Equal(t, "X#", keys["PK"])
}

func TestExpandPrefix(t *testing.T) {
	require.Equal(t, "EVT#", expandPrefix("EVT#{SequenceKey}"))
	require.Equal(t, "STATIC", expandPrefix("STATIC"))
}

func TestPutAndQuery(t *testing.T) {
	client := newFakeClient()
	store := NewJournalStore(client, "journal", 0, time.Millisecond)
	ctx := context.Background()

	for seq := int64(1); seq <= 12; seq++ {
		require.NoError(t, store.Put(ctx, record("ShipDef", seq)))
	}
	require.NoError(t, store.Put(ctx, record("WeaponDef", 1)))

	item := client.items["TYPE#ShipDef"]["EVT#"+sequenceKey(3)]
	require.Equal(t, recordEntityType, item["EntityType"].(*types.AttributeValueMemberS).Value)

	got, err := store.Query(ctx, &models.QueryParams{Type: "ShipDef"})
	require.NoError(t, err)
	require.Len(t, got, 12)
	require.Equal(t, int64(1), got[0].Sequence)
	require.Equal(t, int64(12), got[11].Sequence)
	require.Equal(t, record("ShipDef", 5).RecordedAt.String(), got[4].RecordedAt.String())
}

func TestQueryNewestWithLimitAcrossPages(t *testing.T) {
	client := newFakeClient()
	client.pageSize = 2
	store := NewJournalStore(client, "journal", 0, time.Millisecond)
	ctx := context.Background()

	for seq := int64(1); seq <= 7; seq++ {
		require.NoError(t, store.Put(ctx, record("ShipDef", seq)))
	}

	got, err := store.Query(ctx, &models.QueryParams{Type: "ShipDef", Limit: 5, Newest: true})
	require.NoError(t, err)
	require.Len(t, got, 5)
	require.Equal(t, int64(7), got[0].Sequence)
	require.Equal(t, int64(3), got[4].Sequence)
}

func TestQueryRequiresType(t *testing.T) {
	store := NewJournalStore(newFakeClient(), "journal", 0, time.Millisecond)
	_, err := store.Query(context.Background(), &models.QueryParams{})
	require.True(t, errors.IsValidationError(err))
}

func TestPutRetriesThrottling(t *testing.T) {
	client := newFakeClient()
	client.putFailures = 2
	store := NewJournalStore(client, "journal", 3, time.Millisecond)

	require.NoError(t, store.Put(context.Background(), record("ShipDef", 1)))
	require.Equal(t, 3, client.putCalls)
}

func TestPutGivesUpAfterRetries(t *testing.T) {
	client := newFakeClient()
	client.putFailures = 10
	store := NewJournalStore(client, "journal", 1, time.Millisecond)

	err := store.Put(context.Background(), record("ShipDef", 1))
	require.Error(t, err)
	require.Equal(t, 2, client.putCalls)
}

func TestIsRetryableError(t *testing.T) {
	require.True(t, IsRetryableError(&types.ProvisionedThroughputExceededException{}))
	require.True(t, IsRetryableError(&types.InternalServerError{}))
	require.False(t, IsRetryableError(&types.ResourceNotFoundException{}))
}
