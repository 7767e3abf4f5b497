package repository

import (
	"context"
	"fmt"
	"sort"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const accessPlateIndex = "plate-index"

type accessItem struct {
	ID            string `dynamodbav:"id"`
	Plate         string `dynamodbav:"plate"`
	DriverRUT     string `dynamodbav:"driver_rut"`
	EntryGuardRUT string `dynamodbav:"entry_guard_rut"`
	EntryDate     string `dynamodbav:"entry_date"`
	ExitGuardRUT  string `dynamodbav:"exit_guard_rut,omitempty"`
	ExitDate      string `dynamodbav:"exit_date,omitempty"`
	Forced        bool   `dynamodbav:"forced"`
	ForcedReason  string `dynamodbav:"forced_reason,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
}

// AccessDynamoRepository persists gate AccessRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: plate-index (PK: plate)
//
// An open record holds the "gate#<plate>" claim in the reservations table.
type AccessDynamoRepository struct {
	ddb               DynamoAPI
	tableName         string
	reservationsTable string
}

var _ interfaces.IAccessRepository = (*AccessDynamoRepository)(nil)

func NewAccessDynamoRepository(ddb DynamoAPI, tableName, reservationsTable string) *AccessDynamoRepository {
	return &AccessDynamoRepository{ddb: ddb, tableName: tableName, reservationsTable: reservationsTable}
}

func (r *AccessDynamoRepository) Open(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error) {
	av, err := attributevalue.MarshalMap(toAccessItem(a))
	if err != nil {
		return entities.AccessRecord{}, err
	}
	claim, err := claimReservation(r.reservationsTable, "gate#"+a.Plate, "access#"+a.ID)
	if err != nil {
		return entities.AccessRecord{}, err
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
			return entities.AccessRecord{}, interfaces.ErrAccessOpen
		case ok && containsIndex(failed, 0):
			return entities.AccessRecord{}, fmt.Errorf("access record %s already exists", a.ID)
		}
		return entities.AccessRecord{}, err
	}
	return a, nil
}

func (r *AccessDynamoRepository) OpenByPlate(ctx context.Context, plate string) (entities.AccessRecord, error) {
	records, err := r.ListByPlate(ctx, plate)
	if err != nil {
		return entities.AccessRecord{}, err
	}
	for _, a := range records {
		if a.IsOpen() {
			return a, nil
		}
	}
	return entities.AccessRecord{}, nil
}

// Close writes the exit fields while the record is still open and frees the
// plate's gate claim in the same transaction.
func (r *AccessDynamoRepository) Close(ctx context.Context, a entities.AccessRecord) (entities.AccessRecord, error) {
	av, err := attributevalue.MarshalMap(toAccessItem(a))
	if err != nil {
		return entities.AccessRecord{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#exit_date)"),
			ExpressionAttributeNames: map[string]string{
				"#id":        "id",
				"#exit_date": "exit_date",
			},
		}},
		releaseReservation(r.reservationsTable, "gate#"+a.Plate, "access#"+a.ID),
	}})
	if err != nil {
		if failed, ok := failedConditions(err); ok && containsIndex(failed, 0) {
			return entities.AccessRecord{}, nil
		}
		return entities.AccessRecord{}, err
	}
	return a, nil
}

func (r *AccessDynamoRepository) ListByPlate(ctx context.Context, plate string) ([]entities.AccessRecord, error) {
	items, err := queryAll[accessItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(accessPlateIndex),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": "plate"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: plate}},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.AccessRecord, 0, len(items))
	for _, it := range items {
		out = append(out, fromAccessItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func toAccessItem(a entities.AccessRecord) accessItem {
	return accessItem{
		ID:            a.ID,
		Plate:         a.Plate,
		DriverRUT:     a.DriverRUT,
		EntryGuardRUT: a.EntryGuardRUT,
		EntryDate:     a.EntryDate,
		ExitGuardRUT:  a.ExitGuardRUT,
		ExitDate:      a.ExitDate,
		Forced:        a.Forced,
		ForcedReason:  a.ForcedReason,
		CreatedAt:     formatTime(a.CreatedAt),
	}
}

func fromAccessItem(it accessItem) entities.AccessRecord {
	return entities.AccessRecord{
		ID:            it.ID,
		Plate:         it.Plate,
		DriverRUT:     it.DriverRUT,
		EntryGuardRUT: it.EntryGuardRUT,
		EntryDate:     it.EntryDate,
		ExitGuardRUT:  it.ExitGuardRUT,
		ExitDate:      it.ExitDate,
		Forced:        it.Forced,
		ForcedReason:  it.ForcedReason,
		CreatedAt:     parseTime(it.CreatedAt),
	}
}
