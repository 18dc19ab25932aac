package storage

import (
	"context"
	"errors"
	"time"

	"github.com/JITENDRA0811/impetus9-backend/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ExportLockStorage interface {
	EnsureCreated(ctx context.Context, eventName string) error
	Claim(ctx context.Context, eventName, coordinatorName string, now time.Time) (*ExportLock, bool, error)
	Get(ctx context.Context, eventName string) (*ExportLock, error)
}

type DynamoExportLockStorage struct {
	Client    *dynamodb.Client
	TableName string
}

// EnsureCreated lazily creates the per-event lock record. Two callers
// racing the create is benign: the loser's conditional failure is
// absorbed, since only the Exported flip decides first-download.
func (s *DynamoExportLockStorage) EnsureCreated(ctx context.Context, eventName string) error {
	lock := &ExportLock{EventName: eventName, Exported: false}
	item, err := attributevalue.MarshalMap(lock)
	if err != nil {
		logging.Log.Errorf("LOCK: failed to marshal lock: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(EventName)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return nil
		}
		logging.Log.Errorf("LOCK: failed to create lock for %s: %v", eventName, err)
		return err
	}
	return nil
}

// Claim performs the compare-and-swap on Exported. Exactly one caller
// per event ever sees claimed=true; everyone else gets claimed=false
// and must re-read the lock to learn who won.
func (s *DynamoExportLockStorage) Claim(ctx context.Context, eventName, coordinatorName string, now time.Time) (*ExportLock, bool, error) {
	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"EventName": &types.AttributeValueMemberS{Value: eventName},
		},
		UpdateExpression:    aws.String("SET Exported = :true, FirstDownloaderName = :name, DownloadTime = :now"),
		ConditionExpression: aws.String("Exported = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":name":  &types.AttributeValueMemberS{Value: coordinatorName},
			":now":   &types.AttributeValueMemberS{Value: now.UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return nil, false, nil
		}
		logging.Log.Errorf("LOCK: claim update failed for %s: %v", eventName, err)
		return nil, false, err
	}

	var lock ExportLock
	if err := attributevalue.UnmarshalMap(out.Attributes, &lock); err != nil {
		logging.Log.Errorf("LOCK: failed to unmarshal claimed lock: %v", err)
		return nil, false, err
	}
	return &lock, true, nil
}

func (s *DynamoExportLockStorage) Get(ctx context.Context, eventName string) (*ExportLock, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"EventName": &types.AttributeValueMemberS{Value: eventName},
		},
	})
	if err != nil {
		logging.Log.Errorf("LOCK: GetItem failed for %s: %v", eventName, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrLockNotFound
	}

	var lock ExportLock
	if err := attributevalue.UnmarshalMap(out.Item, &lock); err != nil {
		logging.Log.Errorf("LOCK: failed to unmarshal lock: %v", err)
		return nil, err
	}
	return &lock, nil
}
