package notify

import (
	"go.uber.org/zap"

	"tripmate/internal/domain"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Toast struct {
	Title   string
	Message string
	Variant Variant
}

type Toaster interface {
	Show(t Toast)
}

// Style is the visual treatment of a notification type.
type Style struct {
	Emoji string
	Icon  string
	Color string
}

var fallbackStyle = Style{Emoji: "🔔", Icon: "bell", Color: "gray"}

var styles = map[domain.NotificationType]Style{
	domain.NotifTripUpdate:    {Emoji: "✈️", Icon: "plane", Color: "blue"},
	domain.NotifExpenseAdd:    {Emoji: "💰", Icon: "dollar-sign", Color: "green"},
	domain.NotifExpenseUpdate: {Emoji: "💸", Icon: "dollar-sign", Color: "yellow"},
	domain.NotifExpenseDelete: {Emoji: "🗑️", Icon: "trash", Color: "red"},
	domain.NotifPackingAdd:    {Emoji: "🎒", Icon: "package", Color: "green"},
	domain.NotifPackingUpdate: {Emoji: "📦", Icon: "package", Color: "yellow"},
	domain.NotifPackingDelete: {Emoji: "❌", Icon: "package-x", Color: "red"},
	domain.NotifChatMessage:   {Emoji: "💬", Icon: "message-circle", Color: "purple"},
	domain.NotifMemberJoined:  {Emoji: "👋", Icon: "user-plus", Color: "teal"},
}

func StyleFor(t domain.NotificationType) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return fallbackStyle
}

// ToastFor renders the transient banner for n.
func ToastFor(n domain.Notification) Toast {
	return Toast{
		Title:   n.Title,
		Message: StyleFor(n.Type).Emoji + " " + n.Message,
		Variant: VariantDefault,
	}
}

// LogToaster writes toasts to a zap logger. Used when no UI is attached.
type LogToaster struct {
	logger *zap.Logger
}

func NewLogToaster(logger *zap.Logger) *LogToaster {
	return &LogToaster{logger: logger}
}

func (l *LogToaster) Show(t Toast) {
	if t.Variant == VariantDestructive {
		l.logger.Warn(t.Title, zap.String("message", t.Message))
		return
	}
	l.logger.Info(t.Title, zap.String("message", t.Message))
}
