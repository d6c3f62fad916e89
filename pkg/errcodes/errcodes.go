package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	NoChangesSpecified  failure.ErrorCode = "NoChangesSpecified"
	WrongUser           failure.ErrorCode = "WrongUser"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Аукцион
	AlreadyHasHigherBid failure.ErrorCode = "AlreadyHasHigherBid" // Ставка не выше текущего максимума
	AlreadyActivated    failure.ErrorCode = "AlreadyActivated"
	AlreadyDeleted      failure.ErrorCode = "AlreadyDeleted"
	AlreadySolded       failure.ErrorCode = "AlreadySolded"
	NoBidForDeal        failure.ErrorCode = "NoBidForDeal" // Нет ставок, сделку закрывать не с кем
	DealAlreadyExists   failure.ErrorCode = "DealAlreadyExists"
	NotReadyToClose     failure.ErrorCode = "NotReadyToClose" // Условия закрытия ещё не выполнены

	// Биллинг
	TransactionNotCreated failure.ErrorCode = "TransactionNotCreated"
	InvalidAmount         failure.ErrorCode = "InvalidAmount"
	InsufficientBalance   failure.ErrorCode = "InsufficientBalance"
	WrongStatus           failure.ErrorCode = "WrongStatus" // Недопустимый переход статуса
	UnknownBillType       failure.ErrorCode = "UnknownBillType"
	UnknownPaymentSystem  failure.ErrorCode = "UnknownPaymentSystem"
)
