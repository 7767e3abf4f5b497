package repository

import (
	"context"
	"errors"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type vehicleItem struct {
	Plate    string `dynamodbav:"plate"`
	Brand    string `dynamodbav:"brand"`
	Model    string `dynamodbav:"model"`
	Year     int    `dynamodbav:"year,omitempty"`
	Type     string `dynamodbav:"type,omitempty"`
	Location string `dynamodbav:"location,omitempty"`
	Status   string `dynamodbav:"status"`
}

// VehicleDynamoRepository persists Vehicle entities in DynamoDB.
//
// Table requirements:
//   - PK: plate (string, normalized)
type VehicleDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb DynamoAPI, tableName string) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(v))
	if err != nil {
		return entities.Vehicle{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#plate)"),
		ExpressionAttributeNames: map[string]string{"#plate": "plate"},
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) Get(ctx context.Context, plate string) (entities.Vehicle, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"plate": &types.AttributeValueMemberS{Value: plate},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vehicle{}, nil
	}
	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) List(ctx context.Context) ([]entities.Vehicle, error) {
	items, err := scanAll[vehicleItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Vehicle, 0, len(items))
	for _, it := range items {
		out = append(out, fromVehicleItem(it))
	}
	return out, nil
}

// UpdateStatus is a no-op for unknown plates.
func (r *VehicleDynamoRepository) UpdateStatus(ctx context.Context, plate string, status entities.VehicleStatus) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"plate": &types.AttributeValueMemberS{Value: plate},
		},
		ConditionExpression: aws.String("attribute_exists(#plate)"),
		UpdateExpression:    aws.String("SET #status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#plate":  "plate",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil
		}
		return err
	}
	return nil
}

func toVehicleItem(v entities.Vehicle) vehicleItem {
	return vehicleItem{
		Plate:    v.Plate,
		Brand:    v.Brand,
		Model:    v.Model,
		Year:     v.Year,
		Type:     v.Type,
		Location: v.Location,
		Status:   string(v.Status),
	}
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		Plate:    it.Plate,
		Brand:    it.Brand,
		Model:    it.Model,
		Year:     it.Year,
		Type:     it.Type,
		Location: it.Location,
		Status:   entities.VehicleStatus(it.Status),
	}
}
