package repository

import (
	"context"
	"strings"

	"taller_flota/internal/domain/entities"
	"taller_flota/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const employeesUsernameIndex = "username-index"

type employeeItem struct {
	RUT          string `dynamodbav:"rut"`
	Name         string `dynamodbav:"name"`
	Role         string `dynamodbav:"role"`
	Username     string `dynamodbav:"username"`
	PasswordHash string `dynamodbav:"password_hash"`
	WorkshopID   int64  `dynamodbav:"workshop_id"`
	Region       string `dynamodbav:"region,omitempty"`
	Schedule     string `dynamodbav:"schedule,omitempty"`
	Active       bool   `dynamodbav:"active"`
}

// EmployeeDynamoRepository persists Employee entities in DynamoDB.
//
// Table requirements:
//   - PK: rut (string)
//   - GSI: username-index (PK: username, stored lower-case)
type EmployeeDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEmployeeRepository = (*EmployeeDynamoRepository)(nil)

func NewEmployeeDynamoRepository(ddb DynamoAPI, tableName string) *EmployeeDynamoRepository {
	return &EmployeeDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *EmployeeDynamoRepository) Create(ctx context.Context, e entities.Employee) (entities.Employee, error) {
	it := toEmployeeItem(e)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Employee{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#rut)"),
		ExpressionAttributeNames: map[string]string{"#rut": "rut"},
	})
	if err != nil {
		return entities.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeDynamoRepository) GetByRUT(ctx context.Context, rut string) (entities.Employee, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"rut": &types.AttributeValueMemberS{Value: rut},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Employee{}, err
	}
	if len(out.Item) == 0 {
		return entities.Employee{}, nil
	}
	var it employeeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Employee{}, err
	}
	return fromEmployeeItem(it), nil
}

func (r *EmployeeDynamoRepository) GetByUsername(ctx context.Context, username string) (entities.Employee, error) {
	items, err := queryAll[employeeItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(employeesUsernameIndex),
		KeyConditionExpression: aws.String("username = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: strings.ToLower(username)},
		},
	})
	if err != nil {
		return entities.Employee{}, err
	}
	if len(items) == 0 {
		return entities.Employee{}, nil
	}
	return fromEmployeeItem(items[0]), nil
}

func (r *EmployeeDynamoRepository) List(ctx context.Context) ([]entities.Employee, error) {
	items, err := scanAll[employeeItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Employee, 0, len(items))
	for _, it := range items {
		out = append(out, fromEmployeeItem(it))
	}
	return out, nil
}

func toEmployeeItem(e entities.Employee) employeeItem {
	return employeeItem{
		RUT:          e.RUT,
		Name:         e.Name,
		Role:         string(e.Role),
		Username:     strings.ToLower(e.Username),
		PasswordHash: e.PasswordHash,
		WorkshopID:   e.WorkshopID,
		Region:       e.Region,
		Schedule:     e.Schedule,
		Active:       e.Active,
	}
}

func fromEmployeeItem(it employeeItem) entities.Employee {
	return entities.Employee{
		RUT:          it.RUT,
		Name:         it.Name,
		Role:         entities.Role(it.Role),
		Username:     it.Username,
		PasswordHash: it.PasswordHash,
		WorkshopID:   it.WorkshopID,
		Region:       it.Region,
		Schedule:     it.Schedule,
		Active:       it.Active,
	}
}
