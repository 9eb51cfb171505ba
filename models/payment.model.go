package models

// PaymentCashOnDelivery is the only payment method the store accepts.
const PaymentCashOnDelivery = "cash-on-delivery"
