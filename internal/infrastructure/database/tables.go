package database

import (
	"context"
	"errors"
	"fmt"

	"taller_flota/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type indexSpec struct {
	name    string
	attr    string
	keyType types.ScalarAttributeType
}

type tableSpec struct {
	name    string
	hashKey string
	keyType types.ScalarAttributeType
	indexes []indexSpec
}

// EnsureTables creates missing tables (and their GSIs) with
// on-demand billing. Intended for local DynamoDB.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, cfg config.DynamoDB) error {
	specs := []tableSpec{
		{name: cfg.WorkOrdersTable, hashKey: "id", keyType: types.ScalarAttributeTypeN, indexes: []indexSpec{
			{name: "plate-index", attr: "plate", keyType: types.ScalarAttributeTypeS},
			{name: "slot_key-index", attr: "slot_key", keyType: types.ScalarAttributeTypeS},
		}},
		{name: cfg.VehiclesTable, hashKey: "plate", keyType: types.ScalarAttributeTypeS},
		{name: cfg.EmployeesTable, hashKey: "rut", keyType: types.ScalarAttributeTypeS, indexes: []indexSpec{
			{name: "username-index", attr: "username", keyType: types.ScalarAttributeTypeS},
		}},
		{name: cfg.WorkshopsTable, hashKey: "id", keyType: types.ScalarAttributeTypeN},
		{name: cfg.DocumentsTable, hashKey: "id", keyType: types.ScalarAttributeTypeS, indexes: []indexSpec{
			{name: "plate-index", attr: "plate", keyType: types.ScalarAttributeTypeS},
			{name: "order_id-index", attr: "order_id", keyType: types.ScalarAttributeTypeN},
		}},
		{name: cfg.CountersTable, hashKey: "name", keyType: types.ScalarAttributeTypeS},
		{name: cfg.ReservationsTable, hashKey: "key", keyType: types.ScalarAttributeTypeS},
		{name: cfg.PausesTable, hashKey: "id", keyType: types.ScalarAttributeTypeS, indexes: []indexSpec{
			{name: "order_id-index", attr: "order_id", keyType: types.ScalarAttributeTypeN},
		}},
		{name: cfg.AccessTable, hashKey: "id", keyType: types.ScalarAttributeTypeS, indexes: []indexSpec{
			{name: "plate-index", attr: "plate", keyType: types.ScalarAttributeTypeS},
		}},
	}
	for _, s := range specs {
		if err := ensureTable(ctx, ddb, s); err != nil {
			return fmt.Errorf("ensure table %s: %w", s.name, err)
		}
	}
	return nil
}

func ensureTable(ctx context.Context, ddb *dynamodb.Client, s tableSpec) error {
	_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)})
	if err == nil {
		return nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return err
	}

	attrs := []types.AttributeDefinition{{AttributeName: aws.String(s.hashKey), AttributeType: s.keyType}}
	var gsis []types.GlobalSecondaryIndex
	for _, ix := range s.indexes {
		attrs = append(attrs, types.AttributeDefinition{AttributeName: aws.String(ix.attr), AttributeType: ix.keyType})
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName:  aws.String(ix.name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(ix.attr), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}

	_, err = ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:              aws.String(s.name),
		AttributeDefinitions:   attrs,
		KeySchema:              []types.KeySchemaElement{{AttributeName: aws.String(s.hashKey), KeyType: types.KeyTypeHash}},
		BillingMode:            types.BillingModePayPerRequest,
		GlobalSecondaryIndexes: gsis,
	})
	return err
}
