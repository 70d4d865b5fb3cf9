package kafka

func NewOrderPlacedPublisherForTest(w messageWriter) *OrderPlacedPublisher {
	return newOrderPlacedPublisher(w)
}
