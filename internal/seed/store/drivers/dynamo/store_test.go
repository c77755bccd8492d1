package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/dealerseed/internal/seed/domain"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001")
	require.Equal(t, "DEALER#6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001", pkDealer(id))
	require.Equal(t, "LOCATION#6f1f5c1e-3d55-4a57-9d6f-6e2a61f0b001", skLocation(id))

	kind, got, err := parseSortKey(skRateProgram(id))
	require.NoError(t, err)
	require.Equal(t, SRateProgram, kind)
	require.Equal(t, id, got)

	_, _, err = parseSortKey("LOCATION")
	require.Error(t, err)
	_, _, err = parseSortKey("LOCATION#nope")
	require.Error(t, err)
}

func TestLocationItemRoundTrip(t *testing.T) {
	t.Parallel()

	l := domain.Location{
		LocationID: uuid.New(),
		Name:       "Hobart",
		Items: []domain.Item{{
			ItemID:        uuid.New(),
			Name:          "Stache 7",
			Model:         "Mountain bikes",
			Sku:           "12-345678",
			RateProgramID: uuid.New(),
			Categories:    []string{"Mountain bikes"},
		}},
	}
	l.Assign(uuid.New())

	row, err := locationItem(l)
	require.NoError(t, err)
	require.Equal(t, pkDealer(l.DealerID), row.PK)
	require.Equal(t, l.PartitionKey, row.PartitionKey)

	av, err := attributevalue.MarshalMap(row)
	require.NoError(t, err)
	require.Contains(t, av, "PK")
	require.Contains(t, av, "SK")
	require.Contains(t, av, "doc")

	var back item
	require.NoError(t, attributevalue.UnmarshalMap(av, &back))

	var got domain.Location
	require.NoError(t, decodeItem(back, &got))
	require.Equal(t, l, got)
}
