package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"cardpay/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	putInput *dynamodb.PutItemInput
	query    *dynamodb.QueryInput
	err      error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.putInput = in
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if _, exists := f.items[id]; exists {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.query = in
	processor := in.ExpressionAttributeValues[":processor"].(*types.AttributeValueMemberS).Value
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		if item["processor"].(*types.AttributeValueMemberS).Value == processor {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func sampleRecord(id, processor string) entities.PaymentRecord {
	return entities.PaymentRecord{
		ID:        id,
		Order:     entities.OrderRecord{Price: "10.00", Currency: "USD", Name: "Widget"},
		Result:    entities.GatewayResponseRecord{Processor: processor, Response: `{"id":"x"}`},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC),
	}
}

func TestPaymentRecordDynamoRepository_CreateAndGet(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewPaymentRecordDynamoRepository(ddb, "")

	rec := sampleRecord("pay-1", "PayPal")
	if _, err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(ddb.putInput.TableName) != DefaultPaymentsTableName {
		t.Fatalf("expected default table, got %s", aws.ToString(ddb.putInput.TableName))
	}
	if aws.ToString(ddb.putInput.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("expected conditional put, got %s", aws.ToString(ddb.putInput.ConditionExpression))
	}

	got, err := repo.GetByID(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}

	if _, err := repo.Create(context.Background(), rec); err == nil {
		t.Fatal("expected duplicate id to fail")
	}
}

func TestPaymentRecordDynamoRepository_GetMissing(t *testing.T) {
	repo := NewPaymentRecordDynamoRepository(newFakeDynamo(), "payments-test")
	got, err := repo.GetByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "" {
		t.Fatalf("expected zero record, got %+v", got)
	}
}

func TestPaymentRecordDynamoRepository_ListByProcessor(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewPaymentRecordDynamoRepository(ddb, "payments-test")
	for _, rec := range []entities.PaymentRecord{
		sampleRecord("a", "PayPal"),
		sampleRecord("b", "Braintree"),
		sampleRecord("c", "PayPal"),
	} {
		if _, err := repo.Create(context.Background(), rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := repo.ListByProcessor(context.Background(), "PayPal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if aws.ToString(ddb.query.IndexName) != paymentsProcessorIndex || aws.ToString(ddb.query.TableName) != "payments-test" {
		t.Fatalf("unexpected query input: %+v", ddb.query)
	}
}

func TestPaymentRecordDynamoRepository_Errors(t *testing.T) {
	ddb := newFakeDynamo()
	ddb.err = errors.New("ddb down")
	repo := NewPaymentRecordDynamoRepository(ddb, "")

	if _, err := repo.Create(context.Background(), sampleRecord("a", "PayPal")); err == nil {
		t.Fatal("expected create error")
	}
	if _, err := repo.GetByID(context.Background(), "a"); err == nil {
		t.Fatal("expected get error")
	}
	if _, err := repo.ListByProcessor(context.Background(), "PayPal"); err == nil {
		t.Fatal("expected list error")
	}
}
