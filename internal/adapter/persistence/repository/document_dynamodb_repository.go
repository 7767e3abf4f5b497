package repository

import (
	"context"
	"sort"
	"strconv"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	documentsPlateIndex   = "plate-index"
	documentsOrderIDIndex = "order_id-index"
)

type documentItem struct {
	ID        string `dynamodbav:"id"`
	Title     string `dynamodbav:"title"`
	Type      string `dynamodbav:"type"`
	Path      string `dynamodbav:"path"`
	OrderID   *int64 `dynamodbav:"order_id,omitempty"`
	Plate     string `dynamodbav:"plate,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

// DocumentDynamoRepository persists Document metadata in DynamoDB. The bytes
// live in the file storage.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: plate-index (PK: plate)
//   - GSI: order_id-index (PK: order_id, number; sparse)
type DocumentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDocumentRepository = (*DocumentDynamoRepository)(nil)

func NewDocumentDynamoRepository(ddb DynamoAPI, tableName string) *DocumentDynamoRepository {
	return &DocumentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *DocumentDynamoRepository) Create(ctx context.Context, d entities.Document) (entities.Document, error) {
	av, err := attributevalue.MarshalMap(toDocumentItem(d))
	if err != nil {
		return entities.Document{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Document{}, err
	}
	return d, nil
}

func (r *DocumentDynamoRepository) ListByOrderID(ctx context.Context, orderID int64) ([]entities.Document, error) {
	return r.query(ctx, documentsOrderIDIndex, "order_id", &types.AttributeValueMemberN{Value: strconv.FormatInt(orderID, 10)})
}

func (r *DocumentDynamoRepository) ListByPlate(ctx context.Context, plate string) ([]entities.Document, error) {
	return r.query(ctx, documentsPlateIndex, "plate", &types.AttributeValueMemberS{Value: plate})
}

func (r *DocumentDynamoRepository) query(ctx context.Context, index, attr string, value types.AttributeValue) ([]entities.Document, error) {
	items, err := queryAll[documentItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": value},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Document, 0, len(items))
	for _, it := range items {
		out = append(out, fromDocumentItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func toDocumentItem(d entities.Document) documentItem {
	return documentItem{
		ID:        d.ID,
		Title:     d.Title,
		Type:      string(d.Type),
		Path:      d.Path,
		OrderID:   d.OrderID,
		Plate:     d.Plate,
		CreatedAt: formatTime(d.CreatedAt),
	}
}

func fromDocumentItem(it documentItem) entities.Document {
	return entities.Document{
		ID:        it.ID,
		Title:     it.Title,
		Type:      entities.DocumentType(it.Type),
		Path:      it.Path,
		OrderID:   it.OrderID,
		Plate:     it.Plate,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
