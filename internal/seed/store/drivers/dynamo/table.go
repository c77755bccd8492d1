package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

const (
	SDealer      = "DEALER"
	SLocation    = "LOCATION"
	SRateProgram = "RATEPROGRAM"

	tableWaitTimeout = 2 * time.Minute
)

func pkDealer(id uuid.UUID) string      { return SDealer + "#" + id.String() }
func skLocation(id uuid.UUID) string    { return SLocation + "#" + id.String() }
func skRateProgram(id uuid.UUID) string { return SRateProgram + "#" + id.String() }

// parseSortKey splits "LOCATION#<uuid>" into its kind and id.
func parseSortKey(sk string) (string, uuid.UUID, error) {
	kind, raw, ok := strings.Cut(sk, "#")
	if !ok {
		return "", uuid.Nil, fmt.Errorf("dynamo: malformed sort key %q", sk)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("dynamo: malformed sort key %q: %w", sk, err)
	}
	return kind, id, nil
}

// createTableIfNotExists creates the PK/SK table and waits until it is active.
func createTableIfNotExists(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errors.As(err, &re) {
		return fmt.Errorf("dynamo: create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, tableWaitTimeout); err != nil {
		return fmt.Errorf("dynamo: wait for table %s: %w", table, err)
	}
	return nil
}
