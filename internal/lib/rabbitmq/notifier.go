package rabbitmq

import "github.com/streadway/amqp"

// Notifier публикует уведомления в очередь через default exchange,
// где ключом маршрутизации служит имя очереди.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// Publish отправляет сообщение в указанную очередь.
func (n *Notifier) Publish(queue string, message any) error {
	return PublishMessage(n.ch, "", queue, message)
}
