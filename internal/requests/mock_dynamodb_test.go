package requests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory table keyed by "id". It understands only the
// expressions DynamoStore issues.
// NOTE: This is intentionally minimal and not production-grade.
type mockDynamo struct {
	mu       sync.Mutex
	items    map[string]map[string]types.AttributeValue
	pageSize int // 0 = single page
	err      error

	putCalls    int
	updateCalls int
	scanCalls   int
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(m map[string]types.AttributeValue) (string, error) {
	v, ok := m["id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing id")
	}
	return v.Value, nil
}

func copyItem(in map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	if m.err != nil {
		return nil, m.err
	}
	k, err := keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(id)" {
		if _, exists := m.items[k]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[k] = copyItem(params.Item)
	return &dyn.PutItemOutput{}, nil
}

// stored decodes the item kept under id, or returns nil if there is none.
func (m *mockDynamo) stored(t *testing.T, id string) *AppointmentRequest {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil
	}
	var r AppointmentRequest
	if err := attributevalue.UnmarshalMap(item, &r); err != nil {
		t.Fatalf("unmarshal stored item: %v", err)
	}
	return &r
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.err != nil {
		return nil, m.err
	}
	k, err := keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, exists := m.items[k]
	if !exists {
		if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_exists(id)" {
			return nil, &types.ConditionalCheckFailedException{}
		}
		return nil, errors.New("item not found")
	}
	attr := params.ExpressionAttributeNames["#s"]
	item[attr] = params.ExpressionAttributeValues[":new"]
	return &dyn.UpdateItemOutput{Attributes: copyItem(item)}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if m.err != nil {
		return nil, m.err
	}

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if params.ExclusiveStartKey != nil {
		last, _ := keyOf(params.ExclusiveStartKey)
		start = sort.SearchStrings(keys, last) + 1
	}
	end := len(keys)
	if m.pageSize > 0 && start+m.pageSize < end {
		end = start + m.pageSize
	}

	out := &dyn.ScanOutput{}
	for _, k := range keys[start:end] {
		item := m.items[k]
		if params.FilterExpression != nil {
			attr := params.ExpressionAttributeNames["#insureId"]
			want := params.ExpressionAttributeValues[":insureId"].(*types.AttributeValueMemberS).Value
			got, ok := item[attr].(*types.AttributeValueMemberS)
			if !ok || got.Value != want {
				continue
			}
		}
		out.Items = append(out.Items, copyItem(item))
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: keys[end-1]}}
	}
	return out, nil
}
