package worker

import (
	"context"
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
	"github.com/hibiken/asynq"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/auction"
	"auction_market/internal/domain/service/billing"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/logx"
)

// Mailer — исходящая почта для уведомлений.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Handlers — обработчики фоновых задач. Ошибки делятся на два класса:
// транзиентные уходят в ретрай очереди, бизнес-отказы помечаются
// asynq.SkipRetry — повторять их бессмысленно.
type Handlers struct {
	auction *auction.Service
	billing *billing.Service
	mailer  Mailer

	opsEmail string
}

func NewHandlers(auctionSvc *auction.Service, billingSvc *billing.Service, mailer Mailer, opsEmail string) *Handlers {
	return &Handlers{
		auction:  auctionSvc,
		billing:  billingSvc,
		mailer:   mailer,
		opsEmail: opsEmail,
	}
}

// HandleCloseProduct — отложенное закрытие аукциона. «Не готов» — не
// провал: условие закрытия ещё может наступить, задача остаётся в
// очереди на фиксированных ретраях.
func (h *Handlers) HandleCloseProduct(ctx context.Context, task *asynq.Task) error {
	var payload closeProductPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		observeTask(TypeCloseProduct, statusSkipped)
		return fmt.Errorf("unmarshal payload: %w", asynq.SkipRetry)
	}

	err := h.auction.TryClose(ctx, payload.ProductID)

	switch {
	case err == nil:
		observeTask(TypeCloseProduct, statusOK)
		return nil
	case hasCode(err, errcodes.NotReadyToClose):
		observeTask(TypeCloseProduct, statusRetry)
		return err
	case isBusinessError(err):
		observeTask(TypeCloseProduct, statusSkipped)
		logger(ctx).Warn("product close rejected",
			"product_id", payload.ProductID,
			logx.Error(err),
		)
		return errors.Join(err, asynq.SkipRetry)
	default:
		observeTask(TypeCloseProduct, statusRetry)
		return err
	}
}

// HandleFinalizeDeal выставляет счета по закрытой сделке.
func (h *Handlers) HandleFinalizeDeal(ctx context.Context, task *asynq.Task) error {
	var payload finalizeDealPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		observeTask(TypeFinalizeDeal, statusSkipped)
		return fmt.Errorf("unmarshal payload: %w", asynq.SkipRetry)
	}

	if err := h.auction.Finalize(ctx, payload.DealID); err != nil {
		if isBusinessError(err) {
			observeTask(TypeFinalizeDeal, statusSkipped)
			return errors.Join(err, asynq.SkipRetry)
		}

		observeTask(TypeFinalizeDeal, statusRetry)
		return err
	}

	observeTask(TypeFinalizeDeal, statusOK)

	return nil
}

// HandleActivateBill активирует счёт. Повторная доставка задачи упрётся
// в WrongStatus — это успех, транзакция уже проведена.
func (h *Handlers) HandleActivateBill(ctx context.Context, task *asynq.Task) error {
	var payload activateBillPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		observeTask(TypeActivateBill, statusSkipped)
		return fmt.Errorf("unmarshal payload: %w", asynq.SkipRetry)
	}

	if _, err := h.billing.Activate(ctx, payload.BillID); err != nil {
		if hasCode(err, errcodes.WrongStatus) {
			observeTask(TypeActivateBill, statusOK)
			logger(ctx).Info("bill already activated", "bill_id", payload.BillID)
			return nil
		}

		if isBusinessError(err) {
			observeTask(TypeActivateBill, statusSkipped)
			return errors.Join(err, asynq.SkipRetry)
		}

		observeTask(TypeActivateBill, statusRetry)
		return err
	}

	observeTask(TypeActivateBill, statusOK)

	return nil
}

// HandleSendEmail шлёт уведомление о событии аукциона.
func (h *Handlers) HandleSendEmail(ctx context.Context, task *asynq.Task) error {
	var payload sendEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		observeTask(TypeSendEmail, statusSkipped)
		return fmt.Errorf("unmarshal payload: %w", asynq.SkipRetry)
	}

	product, err := h.auction.GetProduct(ctx, payload.ProductID)
	if err != nil {
		if isBusinessError(err) {
			observeTask(TypeSendEmail, statusSkipped)
			return errors.Join(err, asynq.SkipRetry)
		}

		observeTask(TypeSendEmail, statusRetry)
		return err
	}

	subject, body := composeEmail(payload.EmailType, product)

	if err := h.mailer.Send(ctx, h.opsEmail, subject, body); err != nil {
		observeTask(TypeSendEmail, statusRetry)
		return fmt.Errorf("mailer.Send: %w", err)
	}

	observeTask(TypeSendEmail, statusOK)

	return nil
}

func composeEmail(emailType string, product *entity.Product) (subject, body string) {
	switch emailType {
	case auction.EmailTypeDealClosed:
		subject = fmt.Sprintf("Auction closed: %s", product.Name)
		body = fmt.Sprintf("Auction for product #%d %q is closed.", product.ID, product.Name)
	default:
		subject = fmt.Sprintf("New product: %s", product.Name)
		body = fmt.Sprintf("Product #%d %q was put up, start price %s.",
			product.ID, product.Name, product.StartPrice.StringFixed(2))
	}

	return subject, body
}

func hasCode(err error, code failure.ErrorCode) bool {
	got, ok := domain.GetCode(err)
	return ok && got == code
}

// isBusinessError отделяет доменные отказы от транзиентных сбоев:
// ретраить имеет смысл только инфраструктурные ошибки.
func isBusinessError(err error) bool {
	code, ok := domain.GetCode(err)
	return ok && code != errcodes.InternalServerError && code != errcodes.TimeoutExceeded
}
