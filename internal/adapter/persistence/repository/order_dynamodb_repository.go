package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the slice of the DynamoDB client this repository uses.
// Keeping it an interface lets tests plug in an in-memory client.
type DynamoDBAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type orderItem struct {
	ID              string  `dynamodbav:"id"`
	OrderNumber     string  `dynamodbav:"order_number"`
	Name            string  `dynamodbav:"name"`
	Email           string  `dynamodbav:"email"`
	Phone           string  `dynamodbav:"phone,omitempty"`
	Address         string  `dynamodbav:"address,omitempty"`
	City            string  `dynamodbav:"city,omitempty"`
	ItemName        string  `dynamodbav:"item_name"`
	Quantity        int     `dynamodbav:"item_quantity"`
	ItemStyle       string  `dynamodbav:"item_style,omitempty"`
	BasePrice       float64 `dynamodbav:"base_price"`
	Price           float64 `dynamodbav:"price"`
	Total           float64 `dynamodbav:"total"`
	OrderDate       string  `dynamodbav:"order_date,omitempty"`
	Status          string  `dynamodbav:"status"`
	PaymentStatus   string  `dynamodbav:"payment_status"`
	TrackingID      string  `dynamodbav:"tracking_id,omitempty"`
	TrackingPartner string  `dynamodbav:"tracking_partner,omitempty"`
}

// fieldAttributes maps mutable order fields to their item attribute names.
// Serves as the whitelist for update expressions.
var fieldAttributes = map[entities.OrderField]string{
	entities.FieldStatus:          "status",
	entities.FieldPaymentStatus:   "payment_status",
	entities.FieldTrackingID:      "tracking_id",
	entities.FieldTrackingPartner: "tracking_partner",
}

// OrderDynamoRepository persists order lines in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The store offers no query shape beyond a paginated collection scan, so
// every filtered read is fetch-all plus in-memory filtering. Fine for the
// console's scale (hundreds of rows); do not expect it to scale past that.

type OrderDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
	timeout   time.Duration
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoDBAPI, tableName string, timeout time.Duration) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, timeout: timeout}
}

func (r *OrderDynamoRepository) FetchAll(ctx context.Context) ([]entities.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	orders := []entities.Order{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scan orders: %v", interfaces.ErrBackendUnavailable, err)
		}

		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("%w: unmarshal order: %v", interfaces.ErrBackendUnavailable, err)
			}
			orders = append(orders, fromOrderItem(it))
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *OrderDynamoRepository) FetchByMonth(ctx context.Context, month time.Month, year int) ([]entities.Order, error) {
	orders, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return entities.Filter(orders, entities.InMonth(month, year)), nil
}

func (r *OrderDynamoRepository) FetchByDay(ctx context.Context, day int, month time.Month, year int) ([]entities.Order, error) {
	orders, err := r.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return entities.Filter(orders, entities.OnDay(day, month, year)), nil
}

func (r *OrderDynamoRepository) UpdateField(ctx context.Context, orderID string, field entities.OrderField, value string) (bool, error) {
	attr, ok := fieldAttributes[field]
	if !ok {
		return false, fmt.Errorf("unknown order field %q", field)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #f = :v"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
			"#f":  attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, fmt.Errorf("%w: update order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}
	return true, nil
}

// ApplyBatch writes the whole matched set in one TransactWriteItems call.
// Changes for the same order id are folded into a single update expression,
// since a transaction may touch each key only once.
func (r *OrderDynamoRepository) ApplyBatch(ctx context.Context, changes []entities.FieldChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	grouped, order := groupChanges(changes)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	items := make([]types.TransactWriteItem, 0, len(order))
	for _, id := range order {
		expr := "SET "
		names := map[string]string{"#id": "id"}
		values := map[string]types.AttributeValue{}
		for i, ch := range grouped[id] {
			attr, ok := fieldAttributes[ch.Field]
			if !ok {
				return 0, fmt.Errorf("unknown order field %q", ch.Field)
			}
			nameKey := fmt.Sprintf("#f%d", i)
			valueKey := fmt.Sprintf(":v%d", i)
			if i > 0 {
				expr += ", "
			}
			expr += nameKey + " = " + valueKey
			names[nameKey] = attr
			values[valueKey] = &types.AttributeValueMemberS{Value: ch.Value}
		}

		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(r.tableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: id},
				},
				ConditionExpression:       aws.String("attribute_exists(#id)"),
				UpdateExpression:          aws.String(expr),
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			},
		})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		return 0, fmt.Errorf("%w: transact write: %v", interfaces.ErrBackendUnavailable, err)
	}
	return len(order), nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, orderID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, fmt.Errorf("%w: delete order %s: %v", interfaces.ErrBackendUnavailable, orderID, err)
	}
	return true, nil
}

func (r *OrderDynamoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// groupChanges folds field changes per order id, preserving first-seen order
// so transact items are deterministic.
func groupChanges(changes []entities.FieldChange) (map[string][]entities.FieldChange, []string) {
	grouped := make(map[string][]entities.FieldChange)
	order := make([]string, 0, len(changes))
	for _, ch := range changes {
		if _, ok := grouped[ch.OrderID]; !ok {
			order = append(order, ch.OrderID)
		}
		grouped[ch.OrderID] = append(grouped[ch.OrderID], ch)
	}
	return grouped, order
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:              it.ID,
		OrderNumber:     it.OrderNumber,
		Name:            it.Name,
		Email:           it.Email,
		Phone:           it.Phone,
		Address:         it.Address,
		City:            it.City,
		ItemName:        it.ItemName,
		Quantity:        it.Quantity,
		ItemStyle:       it.ItemStyle,
		BasePrice:       it.BasePrice,
		Price:           it.Price,
		Total:           it.Total,
		OrderDate:       entities.ParseOrderDate(it.OrderDate),
		Status:          entities.OrderStatus(it.Status),
		PaymentStatus:   entities.PaymentStatus(it.PaymentStatus),
		TrackingID:      it.TrackingID,
		TrackingPartner: it.TrackingPartner,
	}
}
