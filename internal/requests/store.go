package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/go-appointment-flow/internal/aws"
)

// ErrRequestNotFound is returned by UpdateState when no item has the given id.
var ErrRequestNotFound = errors.New("appointment request not found")

// DynamoStore encapsulates operations on the appointment requests table.
type DynamoStore struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewDynamoStore creates a store bound to tableName.
func NewDynamoStore(client aws.DynamoDBAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// Create puts req. The id must be fresh; an existing id is not overwritten.
func (s *DynamoStore) Create(ctx context.Context, req AppointmentRequest) error {
	item, err := attributevalue.MarshalMap(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// List scans the table, following pagination, optionally filtered by exact insureId.
func (s *DynamoStore) List(ctx context.Context, filter ListFilter) ([]AppointmentRequest, error) {
	input := &dyn.ScanInput{
		TableName: &s.tableName,
	}
	if filter.InsureID != "" {
		input.FilterExpression = awsString("#insureId = :insureId")
		input.ExpressionAttributeNames = map[string]string{"#insureId": "insureId"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":insureId": &types.AttributeValueMemberS{Value: filter.InsureID},
		}
	}

	out := make([]AppointmentRequest, 0)
	for {
		page, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var items []AppointmentRequest
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal requests: %w", err)
		}
		out = append(out, items...)

		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

// UpdateState sets only the state attribute of an existing request and returns the
// full item. Returns ErrRequestNotFound if the id does not exist; nothing is written then.
func (s *DynamoStore) UpdateState(ctx context.Context, id string, state State) (*AppointmentRequest, error) {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          awsString("SET #s = :new"),
		ConditionExpression:       awsString("attribute_exists(id)"),
		ExpressionAttributeNames:  map[string]string{"#s": "state"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":new": &types.AttributeValueMemberS{Value: string(state)}},
		ReturnValues:              types.ReturnValueAllNew,
	}

	out, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	var r AppointmentRequest
	if err := attributevalue.UnmarshalMap(out.Attributes, &r); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return &r, nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var api smithy.APIError
	return errors.As(err, &api) && api.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
