package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	workOrdersCounter      = "work_orders"
	workOrdersPlateIndex   = "plate-index"
	workOrdersSlotKeyIndex = "slot_key-index"
)

type statusChangeItem struct {
	From      string `dynamodbav:"from"`
	To        string `dynamodbav:"to"`
	Comment   string `dynamodbav:"comment"`
	AuthorRUT string `dynamodbav:"author_rut"`
	Author    string `dynamodbav:"author"`
	At        string `dynamodbav:"at"`
}

type workOrderItem struct {
	ID          int64              `dynamodbav:"id"`
	Plate       string             `dynamodbav:"plate"`
	LocationID  int64              `dynamodbav:"location_id"`
	Date        string             `dynamodbav:"date"`
	Time        string             `dynamodbav:"time,omitempty"`
	SlotKey     string             `dynamodbav:"slot_key"`
	Status      string             `dynamodbav:"status"`
	Description string             `dynamodbav:"description,omitempty"`
	MechanicRUT string             `dynamodbav:"mechanic_rut,omitempty"`
	CreatorRUT  string             `dynamodbav:"creator_rut,omitempty"`
	DriverRUT   string             `dynamodbav:"driver_rut,omitempty"`
	ExitDate    string             `dynamodbav:"exit_date,omitempty"`
	History     []statusChangeItem `dynamodbav:"history,omitempty"`
	CreatedAt   string             `dynamodbav:"created_at"`
	UpdatedAt   string             `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (number)
//   - GSI: plate-index (PK: plate)
//   - GSI: slot_key-index (PK: slot_key)
//
// Active orders also hold a plate claim and, when booked at a time, a slot
// claim in the reservations table.
type WorkOrderDynamoRepository struct {
	ddb               DynamoAPI
	tableName         string
	reservationsTable string
	counters          *CounterDynamoRepository
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb DynamoAPI, tableName, reservationsTable string, counters *CounterDynamoRepository) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{ddb: ddb, tableName: tableName, reservationsTable: reservationsTable, counters: counters}
}

func (r *WorkOrderDynamoRepository) NextID(ctx context.Context) (int64, error) {
	return r.counters.Next(ctx, workOrdersCounter)
}

// Create writes the order and its claims in one transaction. A duplicate id
// fails with ConditionalCheckFailedException.
func (r *WorkOrderDynamoRepository) Create(ctx context.Context, o entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(o))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	items := []types.TransactWriteItem{{Put: &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	}}}
	conflicts := []error{&types.ConditionalCheckFailedException{Message: aws.String(fmt.Sprintf("work order %d already exists", o.ID))}}
	for _, res := range orderReservations(o) {
		claim, err := claimReservation(r.reservationsTable, res.key, orderOwner(o.ID))
		if err != nil {
			return entities.WorkOrder{}, err
		}
		items = append(items, claim)
		conflicts = append(conflicts, res.conflict)
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := failedConditions(err); ok && len(failed) > 0 {
			return entities.WorkOrder{}, conflicts[failed[0]]
		}
		return entities.WorkOrder{}, err
	}
	return o, nil
}

// orderReservations lists the claims an order holds while it is active.
func orderReservations(o entities.WorkOrder) []reservation {
	if !o.Status.IsActive() {
		return nil
	}
	var out []reservation
	if o.Plate != "" {
		out = append(out, reservation{key: "plate#" + o.Plate, conflict: interfaces.ErrPlateReserved})
	}
	if o.Time != "" {
		out = append(out, reservation{key: "slot#" + entities.SlotKey(o.LocationID, o.Date) + "#" + o.Time, conflict: interfaces.ErrSlotReserved})
	}
	return out
}

func orderOwner(id int64) string {
	return "order#" + strconv.FormatInt(id, 10)
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id int64) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) ListByPlate(ctx context.Context, plate string) ([]entities.WorkOrder, error) {
	return r.queryIndex(ctx, workOrdersPlateIndex, "plate", plate, interfaces.WorkOrderFilter{})
}

func (r *WorkOrderDynamoRepository) ListBySlot(ctx context.Context, locationID int64, date string) ([]entities.WorkOrder, error) {
	return r.queryIndex(ctx, workOrdersSlotKeyIndex, "slot_key", entities.SlotKey(locationID, date), interfaces.WorkOrderFilter{})
}

// List uses an index when the filter pins one, and scans otherwise.
func (r *WorkOrderDynamoRepository) List(ctx context.Context, f interfaces.WorkOrderFilter) ([]entities.WorkOrder, error) {
	switch {
	case f.Plate != "":
		return r.queryIndex(ctx, workOrdersPlateIndex, "plate", f.Plate, f)
	case f.LocationID != 0 && f.From != "" && f.From == f.To:
		return r.queryIndex(ctx, workOrdersSlotKeyIndex, "slot_key", entities.SlotKey(f.LocationID, f.From), f)
	}

	items, err := scanAll[workOrderItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return collectWorkOrders(items, f), nil
}

func (r *WorkOrderDynamoRepository) queryIndex(ctx context.Context, index, attr, value string, f interfaces.WorkOrderFilter) ([]entities.WorkOrder, error) {
	items, err := queryAll[workOrderItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	return collectWorkOrders(items, f), nil
}

func collectWorkOrders(items []workOrderItem, f interfaces.WorkOrderFilter) []entities.WorkOrder {
	out := make([]entities.WorkOrder, 0, len(items))
	for _, it := range items {
		o := fromWorkOrderItem(it)
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// UpdateStatus replaces the item only while the stored status still equals
// expected, so two writers racing from the same status cannot both win. An
// order leaving the active set releases its claims in the same transaction.
func (r *WorkOrderDynamoRepository) UpdateStatus(ctx context.Context, o entities.WorkOrder, expected entities.WorkOrderStatus) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(o))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	put := &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: string(expected)},
		},
	}

	var releases []types.TransactWriteItem
	if !o.Status.IsActive() {
		held := o
		held.Status = expected
		for _, res := range orderReservations(held) {
			releases = append(releases, releaseReservation(r.reservationsTable, res.key, orderOwner(o.ID)))
		}
	}

	if len(releases) == 0 {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                 put.TableName,
			Item:                      put.Item,
			ConditionExpression:       put.ConditionExpression,
			ExpressionAttributeNames:  put.ExpressionAttributeNames,
			ExpressionAttributeValues: put.ExpressionAttributeValues,
		})
		if err != nil {
			var cfe *types.ConditionalCheckFailedException
			if errors.As(err, &cfe) {
				return entities.WorkOrder{}, nil
			}
			return entities.WorkOrder{}, err
		}
		return o, nil
	}

	items := append([]types.TransactWriteItem{{Put: put}}, releases...)
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if failed, ok := failedConditions(err); ok && containsIndex(failed, 0) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, fmt.Errorf("close work order %d: %w", o.ID, err)
	}
	return o, nil
}

func toWorkOrderItem(o entities.WorkOrder) workOrderItem {
	history := make([]statusChangeItem, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, statusChangeItem{
			From:      string(h.From),
			To:        string(h.To),
			Comment:   h.Comment,
			AuthorRUT: h.AuthorRUT,
			Author:    h.Author,
			At:        formatTime(h.At),
		})
	}
	return workOrderItem{
		ID:          o.ID,
		Plate:       o.Plate,
		LocationID:  o.LocationID,
		Date:        o.Date,
		Time:        o.Time,
		SlotKey:     entities.SlotKey(o.LocationID, o.Date),
		Status:      string(o.Status),
		Description: o.Description,
		MechanicRUT: o.MechanicRUT,
		CreatorRUT:  o.CreatorRUT,
		DriverRUT:   o.DriverRUT,
		ExitDate:    o.ExitDate,
		History:     history,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	var history []entities.StatusChange
	for _, h := range it.History {
		history = append(history, entities.StatusChange{
			From:      entities.WorkOrderStatus(h.From),
			To:        entities.WorkOrderStatus(h.To),
			Comment:   h.Comment,
			AuthorRUT: h.AuthorRUT,
			Author:    h.Author,
			At:        parseTime(h.At),
		})
	}
	return entities.WorkOrder{
		ID:          it.ID,
		Plate:       it.Plate,
		LocationID:  it.LocationID,
		Date:        it.Date,
		Time:        it.Time,
		Status:      entities.WorkOrderStatus(it.Status),
		Description: it.Description,
		MechanicRUT: it.MechanicRUT,
		CreatorRUT:  it.CreatorRUT,
		DriverRUT:   it.DriverRUT,
		ExitDate:    it.ExitDate,
		History:     history,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
