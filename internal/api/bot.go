package telegram

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"armor-vision/internal/container"
	"armor-vision/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я ищу бронепластины роботов на фотографиях.

📸 Отправьте /check, затем кадр с роботом, и я найду пластины и номера на них.

📋 Команды:
/check — проверить кадр
/color red|blue — цвет противника
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Выберите цвет противника: /color red или /color blue
2️⃣ Отправьте /check и фото
3️⃣ Вы получите список пластин и фото с разметкой

💡 Рекомендации:
• Световые полосы должны быть видны целиком
• Не пересвечивайте кадр
• Номер распознаётся среди 1, 2, 3, 4, 7

📋 Команды:
/check — начать проверку
/color — текущий цвет противника
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте кадр для поиска бронепластин."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendCheck       = "📸 Сначала отправьте /check, затем фото."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgColorUsage      = "🎨 Укажите цвет: /color red или /color blue"
)

// Bot представляет Telegram-бота
type Bot struct {
	api *tgbotapi.BotAPI
	app *container.Container
	log *slog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("authorized", "account", api.Self.UserName)

	return &Bot{
		api: api,
		app: app,
		log: log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	users := b.app.UserService
	user, err := users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error("get user", "user", msg.From.ID, "err", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		if user.State != entity.StateAwaitingPhoto {
			b.sendMessage(msg.Chat.ID, msgSendCheck)
			return
		}
		b.handlePhoto(ctx, msg, user)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCheck)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.app.UserService
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.setState(ctx, user, entity.StateMainMenu)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "check":
		b.setState(ctx, user, entity.StateAwaitingPhoto)
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "color":
		arg := strings.TrimSpace(msg.CommandArguments())
		if arg == "" {
			b.sendMessage(chatID, colorReply(user.Color, true))
			return
		}
		updated, ok, err := users.SetColor(ctx, user.ID, chatID, arg)
		if err != nil {
			b.log.Error("set color", "user", user.ID, "err", err)
			return
		}
		if !ok {
			b.sendMessage(chatID, msgColorUsage)
			return
		}
		b.sendMessage(chatID, colorReply(updated.Color, false))

	case "cancel":
		b.setState(ctx, user, entity.StateMainMenu)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// handlePhoto ищет пластины на присланном фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	chatID := msg.Chat.ID
	b.setState(ctx, user, entity.StateProcessing)
	defer b.setState(ctx, user, entity.StateMainMenu)

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	data, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		b.log.Warn("download photo", "err", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	img, err := decodePhoto(data)
	if err != nil {
		b.log.Warn("decode photo", "bytes", len(data), "err", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	out, err := b.app.DetectionService.DetectImage(ctx, img, user.Color)
	if err != nil {
		b.log.Warn("detect", "user", user.ID, "err", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	text, err := b.app.Describer.Describe(ctx, out.Result)
	if err != nil {
		b.log.Warn("describe", "err", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	if out.Annotated == nil {
		b.sendMessage(chatID, text)
		return
	}
	jpg, err := encodeJPEG(out.Annotated)
	if err != nil {
		b.log.Warn("encode annotated photo", "err", err)
		b.sendMessage(chatID, text)
		return
	}

	reply := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "armor.jpg", Bytes: jpg})
	reply.Caption = text
	if _, err := b.api.Send(reply); err != nil {
		b.log.Warn("send photo", "err", err)
	}
}

func (b *Bot) setState(ctx context.Context, user *entity.User, state entity.UserState) {
	if _, err := b.app.UserService.SetState(ctx, user.ID, user.ChatID, state); err != nil {
		b.log.Error("save user state", "user", user.ID, "err", err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send message", "chat", chatID, "err", err)
	}
}

func decodePhoto(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty image")
	}
	return img, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colorReply(color entity.EnemyColor, current bool) string {
	name := "красный"
	if color == entity.ColorBlue {
		name = "синий"
	}
	if current {
		return fmt.Sprintf("🎨 Цвет противника: %s (%s). Сменить: /color red или /color blue", name, color)
	}
	return fmt.Sprintf("✅ Цвет противника: %s (%s).", name, color)
}
