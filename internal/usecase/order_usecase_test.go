package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tumblecup_admin/internal/domain/entities"
	"tumblecup_admin/internal/usecase/interfaces"
	mock_interfaces "tumblecup_admin/internal/usecase/interfaces/mocks"
	"tumblecup_admin/pkg/logger"

	"go.uber.org/mock/gomock"
)

func sampleOrders() []entities.Order {
	return []entities.Order{
		{ID: "1", OrderNumber: "TC-1001", Name: "Asha", Email: "asha@example.com", ItemName: "Classic Tumbler", Quantity: 2, Status: entities.StatusPending, PaymentStatus: entities.PaymentConfirmed},
		{ID: "2", OrderNumber: "TC-1001", Name: "Asha", Email: "asha@example.com", ItemName: "Can Glass", Quantity: 1, Status: entities.StatusPending, PaymentStatus: entities.PaymentConfirmed},
		{ID: "3", OrderNumber: "TC-2002", Name: "Ravi", Email: "ravi@example.com", ItemName: "Coffee Mug", Quantity: 1, Status: entities.StatusProcessing, PaymentStatus: entities.PaymentPending},
	}
}

func TestOrderUseCase_List(t *testing.T) {
	t.Run("no filters fetches everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)

		orders, err := uc.List(context.Background(), Filters{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orders) != 3 {
			t.Fatalf("expected 3 orders, got %d", len(orders))
		}
	})

	t.Run("month filter delegates to FetchByMonth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchByMonth(gomock.Any(), time.March, 2026).Return(nil, nil)

		if _, err := uc.List(context.Background(), Filters{Month: time.March, Year: 2026}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("day filter takes precedence over month", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchByDay(gomock.Any(), 15, time.March, 2026).Return(nil, nil)

		if _, err := uc.List(context.Background(), Filters{Day: 15, Month: time.March, Year: 2026}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("search and status predicates apply in memory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)

		orders, err := uc.List(context.Background(), Filters{
			Search:   "asha",
			Statuses: []entities.OrderStatus{entities.StatusPending},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		for _, o := range orders {
			if o.Name != "Asha" {
				t.Fatalf("unexpected order in result: %+v", o)
			}
		}
	})

	t.Run("backend error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(nil, interfaces.ErrBackendUnavailable)

		if _, err := uc.List(context.Background(), Filters{}); !errors.Is(err, interfaces.ErrBackendUnavailable) {
			t.Fatalf("expected ErrBackendUnavailable, got %v", err)
		}
	})
}

func TestOrderUseCase_UpdateByOrderNumber(t *testing.T) {
	t.Run("empty fragment", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{OrderNumber: "   "})
		if !errors.Is(err, ErrInvalidOrderNumber) {
			t.Fatalf("expected ErrInvalidOrderNumber, got %v", err)
		}
	})

	t.Run("invalid field", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.OrderField("tracking_id"), NewStatus: "Shipped",
		})
		if !errors.Is(err, ErrInvalidStatusField) {
			t.Fatalf("expected ErrInvalidStatusField, got %v", err)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Teleported",
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("shipped without tracking fails before any store call", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Shipped", TrackingID: "TRK-9",
		})
		if !errors.Is(err, ErrTrackingRequired) {
			t.Fatalf("expected ErrTrackingRequired, got %v", err)
		}
	})

	t.Run("zero matches leaves the store untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)

		res, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "ZZZ-404", Field: entities.FieldStatus, NewStatus: "Processing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Count != 0 || len(res.UpdatedIDs) != 0 {
			t.Fatalf("expected empty result, got %+v", res)
		}
	})

	t.Run("fragment matches case-insensitively and writes once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, changes []entities.FieldChange) (int, error) {
				if len(changes) != 2 {
					t.Fatalf("expected 2 changes, got %d", len(changes))
				}
				for _, ch := range changes {
					if ch.Field != entities.FieldStatus || ch.Value != "Processing" {
						t.Fatalf("unexpected change: %+v", ch)
					}
				}
				return 2, nil
			},
		)

		res, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "tc-1001", Field: entities.FieldStatus, NewStatus: "Processing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Count != 2 {
			t.Fatalf("expected 2 updated, got %d", res.Count)
		}
		if len(res.UpdatedIDs) != 2 || res.UpdatedIDs[0] != "1" || res.UpdatedIDs[1] != "2" {
			t.Fatalf("unexpected ids: %v", res.UpdatedIDs)
		}
	})

	t.Run("shipped stamps tracking fields on every matched line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, changes []entities.FieldChange) (int, error) {
				byField := make(map[entities.OrderField]int)
				for _, ch := range changes {
					byField[ch.Field]++
				}
				if byField[entities.FieldStatus] != 2 || byField[entities.FieldTrackingID] != 2 || byField[entities.FieldTrackingPartner] != 2 {
					t.Fatalf("unexpected change set: %+v", changes)
				}
				return 2, nil
			},
		)

		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Shipped",
			TrackingID: "TRK-9", TrackingPartner: "BlueDart",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("payment status transition never requires tracking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Len(1)).Return(1, nil)

		res, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-2002", Field: entities.FieldPaymentStatus, NewStatus: "Confirmed",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Count != 1 {
			t.Fatalf("expected 1 updated, got %d", res.Count)
		}
	})

	t.Run("apply batch failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(0, interfaces.ErrBackendUnavailable)

		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Processing",
		})
		if !errors.Is(err, interfaces.ErrBackendUnavailable) {
			t.Fatalf("expected ErrBackendUnavailable, got %v", err)
		}
	})
}

func TestOrderUseCase_BatchNotifications(t *testing.T) {
	t.Run("every distinct customer is notified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewOrderUseCase(repo, notifier, logger.Nop())

		orders := sampleOrders()
		// Same TC- prefix so all three lines match, two distinct emails.
		orders[2].OrderNumber = "TC-1002"

		repo.EXPECT().FetchAll(gomock.Any()).Return(orders, nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(3, nil)
		notifier.EXPECT().SendNotification(gomock.Any(), "asha@example.com", gomock.Any(), gomock.Any()).Return(nil)
		notifier.EXPECT().SendNotification(gomock.Any(), "ravi@example.com", gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1", Field: entities.FieldStatus, NewStatus: "Processing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Count != 3 {
			t.Fatalf("expected 3 updated, got %d", res.Count)
		}
	})

	t.Run("email names every matched order number for the customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewOrderUseCase(repo, notifier, logger.Nop())

		// One customer with lines on two distinct order numbers, both
		// matching the fragment.
		orders := sampleOrders()
		orders[2].OrderNumber = "TC-1002"
		orders[2].Email = "asha@example.com"

		repo.EXPECT().FetchAll(gomock.Any()).Return(orders, nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(3, nil)
		notifier.EXPECT().SendNotification(gomock.Any(), "asha@example.com", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _, body string) error {
				for _, want := range []string{"TC-1001", "TC-1002"} {
					if !strings.Contains(body, want) {
						t.Fatalf("body missing %q: %s", want, body)
					}
				}
				return nil
			},
		)

		if _, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1", Field: entities.FieldStatus, NewStatus: "Processing",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("notifier failure does not unwind the update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewOrderUseCase(repo, notifier, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(2, nil)
		notifier.EXPECT().SendNotification(gomock.Any(), "asha@example.com", gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		res, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Processing",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Count != 2 {
			t.Fatalf("expected 2 updated, got %d", res.Count)
		}
	})

	t.Run("shipped notification carries tracking details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewOrderUseCase(repo, notifier, logger.Nop())

		repo.EXPECT().FetchAll(gomock.Any()).Return(sampleOrders(), nil)
		repo.EXPECT().ApplyBatch(gomock.Any(), gomock.Any()).Return(2, nil)
		notifier.EXPECT().SendNotification(gomock.Any(), "asha@example.com", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _, subject, body string) error {
				if subject != "Tumble Cup Order Status Update" {
					t.Fatalf("unexpected subject: %s", subject)
				}
				for _, want := range []string{"TC-1001", "Shipped", "TRK-9 via BlueDart"} {
					if !strings.Contains(body, want) {
						t.Fatalf("body missing %q: %s", want, body)
					}
				}
				return nil
			},
		)

		_, err := uc.UpdateByOrderNumber(context.Background(), BatchUpdateCommand{
			OrderNumber: "TC-1001", Field: entities.FieldStatus, NewStatus: "Shipped",
			TrackingID: "TRK-9", TrackingPartner: "BlueDart",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_SingleUpdates(t *testing.T) {
	t.Run("update status invalid id", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		if err := uc.UpdateStatus(context.Background(), "  ", entities.StatusShipped); !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("update status invalid value", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		if err := uc.UpdateStatus(context.Background(), "1", entities.OrderStatus("Lost")); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("update status not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().UpdateField(gomock.Any(), "404", entities.FieldStatus, "Delivered").Return(false, nil)

		if err := uc.UpdateStatus(context.Background(), "404", entities.StatusDelivered); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("update status success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().UpdateField(gomock.Any(), "1", entities.FieldStatus, "Delivered").Return(true, nil)

		if err := uc.UpdateStatus(context.Background(), " 1 ", entities.StatusDelivered); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("update payment status success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().UpdateField(gomock.Any(), "1", entities.FieldPaymentStatus, "Confirmed").Return(true, nil)

		if err := uc.UpdatePaymentStatus(context.Background(), "1", entities.PaymentConfirmed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("update payment status backend error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().UpdateField(gomock.Any(), "1", entities.FieldPaymentStatus, "Confirmed").Return(false, interfaces.ErrBackendUnavailable)

		if err := uc.UpdatePaymentStatus(context.Background(), "1", entities.PaymentConfirmed); !errors.Is(err, interfaces.ErrBackendUnavailable) {
			t.Fatalf("expected ErrBackendUnavailable, got %v", err)
		}
	})
}

func TestOrderUseCase_Delete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewOrderUseCase(nil, nil, logger.Nop())
		if err := uc.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().Delete(gomock.Any(), "404").Return(false, nil)

		if err := uc.Delete(context.Background(), "404"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := NewOrderUseCase(repo, nil, logger.Nop())

		repo.EXPECT().Delete(gomock.Any(), "1").Return(true, nil)

		if err := uc.Delete(context.Background(), " 1 "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
