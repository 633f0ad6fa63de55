package middleware

import (
	"encoding/json"
	"errors"
	"log"

	tele "gopkg.in/telebot.v4"
)

// BotLogger возвращает middleware, которое логирует входящие обновления Telegram в формате JSON.
// Включается настройкой telegram_bot.debug.
func BotLogger(logger *log.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			data, _ := json.MarshalIndent(c.Update(), "", "  ")
			logger.Println(string(data))
			return next(c)
		}
	}
}

// BotRecover перехватывает панику в обработчике бота и вызывает onError
func BotRecover(onError func(error, tele.Context)) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					// Преобразуем значение panic в объект error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = errors.New("unknown panic")
					}
					onError(e, c)
					err = e
				}
			}()
			return next(c)
		}
	}
}
