package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"auction_market/internal/domain"
	"auction_market/pkg/errcodes"
)

// toFailure переводит доменные ошибки в транспортные. Классы ошибок
// reply.Error превращает в HTTP статусы, доменный код уходит клиенту
// как есть.
func toFailure(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Code {
	case errcodes.NotFound:
		return failure.NewNotFoundErrorFromError(err,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.ValidationError,
		errcodes.NoChangesSpecified,
		errcodes.InvalidPaging,
		errcodes.InvalidAmount,
		errcodes.UnknownBillType,
		errcodes.UnknownPaymentSystem:
		return failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.Forbidden, errcodes.WrongUser:
		return failure.NewForbiddenErrorFromError(err,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.AlreadyHasHigherBid,
		errcodes.AlreadyActivated,
		errcodes.AlreadyDeleted,
		errcodes.AlreadySolded,
		errcodes.DealAlreadyExists,
		errcodes.NotReadyToClose,
		errcodes.WrongStatus:
		return failure.NewConflictErrorFromError(err,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	case errcodes.InsufficientBalance, errcodes.TransactionNotCreated, errcodes.NoBidForDeal:
		return failure.NewUnprocessableEntityErrorFromError(err,
			failure.WithCode(appErr.Code), failure.WithDescription(appErr.Message))
	default:
		return err
	}
}
