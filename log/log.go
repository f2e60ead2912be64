package log

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// subscriberBuffer bounds how far a slow subscriber may lag before events are dropped for it
const subscriberBuffer = 64

var (
	level = INFO

	mux         sync.RWMutex
	subscribers = map[Subscription]struct{}{}
)

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
}

type Event struct {
	LogLevel LogLevel
	Payload  string
}

func (e *Event) Type() string {
	return e.LogLevel.String()
}

// Subscription receives every event emitted after Subscribe, regardless of the level.
type Subscription chan *Event

func Infoln(format string, v ...interface{}) {
	event := newLog(INFO, format, v...)
	publish(event)
	print(event)
}

func Warnln(format string, v ...interface{}) {
	event := newLog(WARNING, format, v...)
	publish(event)
	print(event)
}

func Errorln(format string, v ...interface{}) {
	event := newLog(ERROR, format, v...)
	publish(event)
	print(event)
}

func Debugln(format string, v ...interface{}) {
	event := newLog(DEBUG, format, v...)
	publish(event)
	print(event)
}

func Fatalln(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}

func Subscribe() Subscription {
	sub := make(Subscription, subscriberBuffer)
	mux.Lock()
	subscribers[sub] = struct{}{}
	mux.Unlock()
	return sub
}

func UnSubscribe(sub Subscription) {
	mux.Lock()
	defer mux.Unlock()
	if _, ok := subscribers[sub]; !ok {
		return
	}
	delete(subscribers, sub)
	close(sub)
}

func Level() LogLevel {
	return level
}

func SetLevel(newLevel LogLevel) {
	level = newLevel
}

func publish(event *Event) {
	mux.RLock()
	defer mux.RUnlock()
	for sub := range subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}

func print(data *Event) {
	if data.LogLevel < level {
		return
	}

	switch data.LogLevel {
	case INFO:
		log.Infoln(data.Payload)
	case WARNING:
		log.Warnln(data.Payload)
	case ERROR:
		log.Errorln(data.Payload)
	case DEBUG:
		log.Debugln(data.Payload)
	}
}

func newLog(logLevel LogLevel, format string, v ...interface{}) *Event {
	return &Event{
		LogLevel: logLevel,
		Payload:  fmt.Sprintf(format, v...),
	}
}
