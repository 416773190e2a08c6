package repository

import (
	"context"
	"time"

	"cardpay/internal/domain/entities"
	"cardpay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultPaymentsTableName = "payments"
	paymentsProcessorIndex   = "processor-index"
)

// DynamoDBAPI is the subset of *dynamodb.Client the repository calls.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type paymentRecordItem struct {
	ID        string `dynamodbav:"id"`
	Price     string `dynamodbav:"price"`
	Currency  string `dynamodbav:"currency"`
	Name      string `dynamodbav:"name"`
	Processor string `dynamodbav:"processor"`
	Response  string `dynamodbav:"response"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PaymentRecordDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: processor-index (PK: processor, SK: created_at)
type PaymentRecordDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentRecordRepository = (*PaymentRecordDynamoRepository)(nil)

func NewPaymentRecordDynamoRepository(ddb DynamoDBAPI, tableName string) *PaymentRecordDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentsTableName
	}
	return &PaymentRecordDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentRecordDynamoRepository) Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error) {
	av, err := attributevalue.MarshalMap(toPaymentRecordItem(p))
	if err != nil {
		return entities.PaymentRecord{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	return p, nil
}

// GetByID returns a zero PaymentRecord when the item does not exist.
func (r *PaymentRecordDynamoRepository) GetByID(ctx context.Context, id string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it), nil
}

func (r *PaymentRecordDynamoRepository) ListByProcessor(ctx context.Context, processor string) ([]entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsProcessorIndex),
		KeyConditionExpression: aws.String("#processor = :processor"),
		ExpressionAttributeNames: map[string]string{
			"#processor": "processor",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":processor": &types.AttributeValueMemberS{Value: processor},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.PaymentRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var it paymentRecordItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromPaymentRecordItem(it))
	}
	return items, nil
}

func toPaymentRecordItem(p entities.PaymentRecord) paymentRecordItem {
	return paymentRecordItem{
		ID:        p.ID,
		Price:     p.Order.Price,
		Currency:  p.Order.Currency,
		Name:      p.Order.Name,
		Processor: p.Result.Processor,
		Response:  p.Result.Response,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.PaymentRecord{
		ID: it.ID,
		Order: entities.OrderRecord{
			Price:    it.Price,
			Currency: it.Currency,
			Name:     it.Name,
		},
		Result: entities.GatewayResponseRecord{
			Processor: it.Processor,
			Response:  it.Response,
		},
		CreatedAt: createdAt,
	}
}
