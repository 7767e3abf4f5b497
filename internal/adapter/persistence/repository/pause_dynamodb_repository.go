package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const pausesOrderIDIndex = "order_id-index"

type pauseItem struct {
	ID        string `dynamodbav:"id"`
	OrderID   int64  `dynamodbav:"order_id"`
	Reason    string `dynamodbav:"reason"`
	Note      string `dynamodbav:"note,omitempty"`
	StartedBy string `dynamodbav:"started_by,omitempty"`
	StoppedBy string `dynamodbav:"stopped_by,omitempty"`
	StartedAt string `dynamodbav:"started_at"`
	EndedAt   string `dynamodbav:"ended_at,omitempty"`
	Active    bool   `dynamodbav:"active"`
}

// PauseDynamoRepository persists Pause entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id, number)
//
// An active pause holds the "pause#<order_id>" claim in the reservations
// table.
type PauseDynamoRepository struct {
	ddb               DynamoAPI
	tableName         string
	reservationsTable string
}

var _ interfaces.IPauseRepository = (*PauseDynamoRepository)(nil)

func NewPauseDynamoRepository(ddb DynamoAPI, tableName, reservationsTable string) *PauseDynamoRepository {
	return &PauseDynamoRepository{ddb: ddb, tableName: tableName, reservationsTable: reservationsTable}
}

func pauseReservationKey(orderID int64) string {
	return "pause#" + strconv.FormatInt(orderID, 10)
}

func (r *PauseDynamoRepository) Start(ctx context.Context, p entities.Pause) (entities.Pause, error) {
	av, err := attributevalue.MarshalMap(toPauseItem(p))
	if err != nil {
		return entities.Pause{}, err
	}
	claim, err := claimReservation(r.reservationsTable, pauseReservationKey(p.OrderID), "pause#"+p.ID)
	if err != nil {
		return entities.Pause{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}},
		claim,
	}})
	if err != nil {
		failed, ok := failedConditions(err)
		switch {
		case ok && containsIndex(failed, 1):
			return entities.Pause{}, interfaces.ErrPauseActive
		case ok && containsIndex(failed, 0):
			return entities.Pause{}, fmt.Errorf("pause %s already exists", p.ID)
		}
		return entities.Pause{}, err
	}
	return p, nil
}

func (r *PauseDynamoRepository) Active(ctx context.Context, orderID int64) (entities.Pause, error) {
	pauses, err := r.ListByOrder(ctx, orderID)
	if err != nil {
		return entities.Pause{}, err
	}
	for _, p := range pauses {
		if p.Active {
			return p, nil
		}
	}
	return entities.Pause{}, nil
}

// Stop closes the pause while it is still active and frees the order's
// claim in the same transaction.
func (r *PauseDynamoRepository) Stop(ctx context.Context, p entities.Pause) (entities.Pause, error) {
	av, err := attributevalue.MarshalMap(toPauseItem(p))
	if err != nil {
		return entities.Pause{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(#id) AND #active = :active"),
			ExpressionAttributeNames: map[string]string{
				"#id":     "id",
				"#active": "active",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
		}},
		releaseReservation(r.reservationsTable, pauseReservationKey(p.OrderID), "pause#"+p.ID),
	}})
	if err != nil {
		if failed, ok := failedConditions(err); ok && containsIndex(failed, 0) {
			return entities.Pause{}, nil
		}
		return entities.Pause{}, err
	}
	return p, nil
}

func (r *PauseDynamoRepository) ListByOrder(ctx context.Context, orderID int64) ([]entities.Pause, error) {
	items, err := queryAll[pauseItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(pausesOrderIDIndex),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": "order_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Pause, 0, len(items))
	for _, it := range items {
		out = append(out, fromPauseItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func toPauseItem(p entities.Pause) pauseItem {
	it := pauseItem{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Reason:    p.Reason,
		Note:      p.Note,
		StartedBy: p.StartedBy,
		StoppedBy: p.StoppedBy,
		StartedAt: formatTime(p.StartedAt),
		Active:    p.Active,
	}
	if p.EndedAt != nil {
		it.EndedAt = formatTime(*p.EndedAt)
	}
	return it
}

func fromPauseItem(it pauseItem) entities.Pause {
	p := entities.Pause{
		ID:        it.ID,
		OrderID:   it.OrderID,
		Reason:    it.Reason,
		Note:      it.Note,
		StartedBy: it.StartedBy,
		StoppedBy: it.StoppedBy,
		StartedAt: parseTime(it.StartedAt),
		Active:    it.Active,
	}
	if it.EndedAt != "" {
		end := parseTime(it.EndedAt)
		p.EndedAt = &end
	}
	return p
}
