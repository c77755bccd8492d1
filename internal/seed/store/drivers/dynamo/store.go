package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
	"github.com/aussiebroadwan/dealerseed/internal/seed/store"
)

// Store keeps documents in a single DynamoDB table. Every document of a
// dealer shares the partition DEALER#<dealerId>; the sort key names the
// document kind and id.
type Store struct {
	table string
	cli   *dynamodb.Client
}

var _ store.Store = (*Store)(nil)

// item is the stored row. Doc holds the JSON document.
type item struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	PartitionKey string `dynamodbav:"partition_key"`
	Doc          string `dynamodbav:"doc"`
}

func NewStore(table string, cli *dynamodb.Client) *Store {
	return &Store{table: table, cli: cli}
}

func (s *Store) EnsureContainer(ctx context.Context) error {
	return createTableIfNotExists(ctx, s.cli, s.table)
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.cli.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	return err
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error { return nil }

func (s *Store) PutLocation(ctx context.Context, l domain.Location) error {
	if err := store.ValidateLocation(l); err != nil {
		return err
	}
	row, err := locationItem(l)
	if err != nil {
		return err
	}
	return s.put(ctx, row)
}

func (s *Store) PutRateProgram(ctx context.Context, p domain.RateProgram) error {
	if err := store.ValidateRateProgram(p); err != nil {
		return err
	}
	row, err := rateProgramItem(p)
	if err != nil {
		return err
	}
	return s.put(ctx, row)
}

func (s *Store) GetLocation(ctx context.Context, dealerID, locationID uuid.UUID) (domain.Location, error) {
	var l domain.Location
	err := s.get(ctx, pkDealer(dealerID), skLocation(locationID), &l)
	return l, err
}

func (s *Store) GetRateProgram(ctx context.Context, dealerID, id uuid.UUID) (domain.RateProgram, error) {
	var p domain.RateProgram
	err := s.get(ctx, pkDealer(dealerID), skRateProgram(id), &p)
	return p, err
}

func (s *Store) ListLocations(ctx context.Context, dealerID uuid.UUID) ([]domain.Location, error) {
	paginator := dynamodb.NewQueryPaginator(s.cli, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkDealer(dealerID)},
			":sk": &ddbTypes.AttributeValueMemberS{Value: SLocation + "#"},
		},
		ConsistentRead: aws.Bool(true),
	})

	var out []domain.Location
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamo: query locations: %w", err)
		}
		var rows []item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &rows); err != nil {
			return nil, err
		}
		for _, row := range rows {
			var l domain.Location
			if err := decodeItem(row, &l); err != nil {
				return nil, err
			}
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) put(ctx context.Context, row item) error {
	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamo: put %s: %w", row.SK, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, pk, sk string, dst any) error {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pk},
			"SK": &ddbTypes.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamo: get %s: %w", sk, err)
	}
	if out.Item == nil {
		return store.ErrNotFound
	}
	var row item
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return err
	}
	return decodeItem(row, dst)
}

func locationItem(l domain.Location) (item, error) {
	doc, err := json.Marshal(l)
	if err != nil {
		return item{}, err
	}
	return item{
		PK:           pkDealer(l.DealerID),
		SK:           skLocation(l.LocationID),
		PartitionKey: l.PartitionKey,
		Doc:          string(doc),
	}, nil
}

func rateProgramItem(p domain.RateProgram) (item, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return item{}, err
	}
	return item{
		PK:           pkDealer(p.DealerID),
		SK:           skRateProgram(p.RateProgramID),
		PartitionKey: p.PartitionKey,
		Doc:          string(doc),
	}, nil
}

func decodeItem(row item, dst any) error {
	if _, _, err := parseSortKey(row.SK); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(row.Doc), dst); err != nil {
		return fmt.Errorf("dynamo: decode %s: %w", row.SK, err)
	}
	return nil
}
