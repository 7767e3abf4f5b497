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

type workshopItem struct {
	ID       int64  `dynamodbav:"id"`
	Name     string `dynamodbav:"name"`
	Location string `dynamodbav:"location,omitempty"`
}

// WorkshopDynamoRepository persists Workshop entities in DynamoDB.
//
// Table requirements:
//   - PK: id (number)
type WorkshopDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IWorkshopRepository = (*WorkshopDynamoRepository)(nil)

func NewWorkshopDynamoRepository(ddb DynamoAPI, tableName string) *WorkshopDynamoRepository {
	return &WorkshopDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *WorkshopDynamoRepository) Create(ctx context.Context, w entities.Workshop) (entities.Workshop, error) {
	av, err := attributevalue.MarshalMap(workshopItem(w))
	if err != nil {
		return entities.Workshop{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Workshop{}, err
	}
	return w, nil
}

func (r *WorkshopDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Workshop, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
		},
	})
	if err != nil {
		return entities.Workshop{}, err
	}
	if len(out.Item) == 0 {
		return entities.Workshop{}, nil
	}
	var it workshopItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Workshop{}, err
	}
	return entities.Workshop(it), nil
}

func (r *WorkshopDynamoRepository) List(ctx context.Context) ([]entities.Workshop, error) {
	items, err := scanAll[workshopItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Workshop, 0, len(items))
	for _, it := range items {
		out = append(out, entities.Workshop(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
