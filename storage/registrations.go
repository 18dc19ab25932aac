package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type RegistrationStorage interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEvent(ctx context.Context, eventName string) ([]*Registration, error)
	GetByReceipt(ctx context.Context, eventName, receiptID string) (*Registration, error)
	CountByDevice(ctx context.Context, fingerprint string) (int, error)
	ReceiptExists(ctx context.Context, receiptID string) (bool, error)
}

type DynamoRegistrationStorage struct {
	Client          *dynamodb.Client
	TableName       string
	GuardTableName  string
	DeviceIndexName string
}

type uniquenessGuard struct {
	key   string
	kind  ConflictKind
	value string
}

func registrationGuards(reg *Registration) []uniquenessGuard {
	guards := []uniquenessGuard{
		{key: "RECEIPT#" + reg.ReceiptID, kind: ConflictReceipt, value: reg.ReceiptID},
	}
	for _, phone := range reg.Phones() {
		guards = append(guards, uniquenessGuard{
			key:   fmt.Sprintf("PHONE#%s#%s", reg.EventName, phone),
			kind:  ConflictPhone,
			value: phone,
		})
	}
	for _, roll := range reg.Rolls() {
		guards = append(guards, uniquenessGuard{
			key:   fmt.Sprintf("ROLL#%s#%s", reg.EventName, roll),
			kind:  ConflictRoll,
			value: roll,
		})
	}
	return guards
}

// Create persists the registration and its uniqueness claims in one
// transaction. Phones and rolls are claimed as guard items keyed per
// event; the conditional puts are the write-time authority for the
// no-duplicate invariant, so a losing race surfaces here as a
// ConflictError even when the pre-insert checks saw no collision.
func (s *DynamoRegistrationStorage) Create(ctx context.Context, reg *Registration) error {
	item, err := attributevalue.MarshalMap(reg)
	if err != nil {
		logging.Log.Errorf("STORE: failed to marshal registration: %v", err)
		return err
	}

	guards := registrationGuards(reg)
	writes := make([]types.TransactWriteItem, 0, len(guards)+1)
	writes = append(writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           &s.TableName,
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(EventName) AND attribute_not_exists(ReceiptId)"),
		},
	})
	for _, g := range guards {
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: &s.GuardTableName,
				Item: map[string]types.AttributeValue{
					"GuardKey":  &types.AttributeValueMemberS{Value: g.key},
					"ReceiptId": &types.AttributeValueMemberS{Value: reg.ReceiptID},
				},
				ConditionExpression: aws.String("attribute_not_exists(GuardKey)"),
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return s.classifyCancellation(tce, guards)
		}
		logging.Log.Errorf("STORE: transact write failed: %v", err)
		return err
	}
	return nil
}

// classifyCancellation maps the cancelled transact item back to the
// guard that failed its condition. Reason order matches item order:
// index 0 is the registration item itself, the rest line up with guards.
func (s *DynamoRegistrationStorage) classifyCancellation(tce *types.TransactionCanceledException, guards []uniquenessGuard) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		if i == 0 {
			logging.Log.Warnf("STORE: registration item already exists")
			return &ConflictError{Kind: ConflictGeneric}
		}
		g := guards[i-1]
		logging.Log.Warnf("STORE: uniqueness guard already claimed: %s", g.key)
		return &ConflictError{Kind: g.kind, Value: g.value}
	}
	logging.Log.Errorf("STORE: transaction cancelled without failed condition: %v", tce)
	return tce
}

// GetByEvent returns all registrations for the event, newest first.
func (s *DynamoRegistrationStorage) GetByEvent(ctx context.Context, eventName string) ([]*Registration, error) {
	var regs []*Registration
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("EventName = :event"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":event": &types.AttributeValueMemberS{Value: eventName},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			logging.Log.Errorf("STORE: query by event failed: %v", err)
			return nil, err
		}

		var page []*Registration
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			logging.Log.Errorf("STORE: failed to unmarshal registrations: %v", err)
			return nil, err
		}
		regs = append(regs, page...)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].CreatedAt.After(regs[j].CreatedAt)
	})
	return regs, nil
}

func (s *DynamoRegistrationStorage) GetByReceipt(ctx context.Context, eventName, receiptID string) (*Registration, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"EventName": &types.AttributeValueMemberS{Value: eventName},
			"ReceiptId": &types.AttributeValueMemberS{Value: receiptID},
		},
	})
	if err != nil {
		logging.Log.Errorf("STORE: GetItem by receipt failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrRegistrationNotFound
	}

	var reg Registration
	if err := attributevalue.UnmarshalMap(out.Item, &reg); err != nil {
		logging.Log.Errorf("STORE: failed to unmarshal registration: %v", err)
		return nil, err
	}
	return &reg, nil
}

// CountByDevice counts registrations across every event for one device
// fingerprint, via the device GSI.
func (s *DynamoRegistrationStorage) CountByDevice(ctx context.Context, fingerprint string) (int, error) {
	count := 0
	var lastKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			IndexName:              &s.DeviceIndexName,
			KeyConditionExpression: aws.String("DeviceFingerprint = :fp"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":fp": &types.AttributeValueMemberS{Value: fingerprint},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			logging.Log.Errorf("STORE: device count query failed: %v", err)
			return 0, err
		}
		count += int(out.Count)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return count, nil
}

// ReceiptExists checks the receipt guard item. Used by receipt
// generation to retry on the (rare) random collision.
func (s *DynamoRegistrationStorage) ReceiptExists(ctx context.Context, receiptID string) (bool, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.GuardTableName,
		Key: map[string]types.AttributeValue{
			"GuardKey": &types.AttributeValueMemberS{Value: "RECEIPT#" + receiptID},
		},
	})
	if err != nil {
		logging.Log.Errorf("STORE: receipt lookup failed: %v", err)
		return false, err
	}
	return out.Item != nil, nil
}
