package repository

import (
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Reservations are exclusive claims stored one item per key.
//
// Table requirements:
//   - PK: key (string)
//
// A claim is written with attribute_not_exists inside the same transaction as
// the item it guards, so two writers cannot both hold it. owner lets a release
// touch only its own claim.
type reservationItem struct {
	Key       string `dynamodbav:"key"`
	Owner     string `dynamodbav:"owner"`
	CreatedAt string `dynamodbav:"created_at"`
}

// reservation pairs a claim key with the error reported when it is taken.
type reservation struct {
	key      string
	conflict error
}

func claimReservation(table, key, owner string) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(reservationItem{Key: key, Owner: owner, CreatedAt: formatTime(time.Now())})
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{
			"#key": "key",
		},
	}}, nil
}

// releaseReservation deletes the claim if owner still holds it. A missing
// claim is not an error, so rows written before the claim existed can close.
func releaseReservation(table, key, owner string) types.TransactWriteItem {
	return types.TransactWriteItem{Delete: &types.Delete{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("attribute_not_exists(#key) OR #owner = :owner"),
		ExpressionAttributeNames: map[string]string{
			"#key":   "key",
			"#owner": "owner",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: owner},
		},
	}}
}

// failedConditions returns the indexes of the transaction items whose
// condition failed. ok is false when err is not a cancelled transaction.
func failedConditions(err error) (failed []int, ok bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return nil, false
	}
	for i, r := range tce.CancellationReasons {
		if aws.ToString(r.Code) == "ConditionalCheckFailed" {
			failed = append(failed, i)
		}
	}
	return failed, true
}

func containsIndex(xs []int, i int) bool {
	for _, x := range xs {
		if x == i {
			return true
		}
	}
	return false
}
