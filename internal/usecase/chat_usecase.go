package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Shoxzn12/level-up-pc/internal/clients"
	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const chatSystemPrompt = "Eres el asistente virtual de Level-Up PC, una tienda de componentes y periféricos gamer. " +
	"Responde en español, de forma breve y amable. Ayuda con productos, precios, envíos, medios de pago y garantía. " +
	"Si no sabes algo, sugiere contactar a soporte@levelup.cl."

type cannedReply struct {
	triggers []string
	reply    string
}

// Order matters: the first trigger found in the message wins.
var cannedReplies = []cannedReply{
	{
		triggers: []string{"precio"},
		reply: "Nuestros precios de referencia: tarjetas de video desde $249.990, procesadores desde $129.990, " +
			"memorias RAM desde $34.990 y SSD desde $39.990. Revisa el catálogo para ver el precio exacto de cada producto.",
	},
	{
		triggers: []string{"envio", "despacho"},
		reply:    "Hacemos envíos a todo Chile. En la Región Metropolitana llegan en 24 a 48 horas y en regiones entre 3 y 5 días hábiles.",
	},
	{
		triggers: []string{"pago"},
		reply:    "Puedes pagar con tarjeta de crédito, débito o transferencia a través de Mercado Pago.",
	},
	{
		triggers: []string{"garantia"},
		reply:    "Todos nuestros productos tienen 6 meses de garantía legal. Escríbenos con tu número de pedido para gestionarla.",
	},
	{
		triggers: []string{"stock"},
		reply:    "El stock de cada producto se muestra en su ficha del catálogo y se actualiza en tiempo real.",
	},
	{
		triggers: []string{"horario"},
		reply:    "Atendemos de lunes a viernes de 10:00 a 19:00 y sábados de 10:00 a 14:00.",
	},
	{
		triggers: []string{"contacto"},
		reply:    "Puedes escribirnos a soporte@levelup.cl o por WhatsApp al +56 9 1234 5678.",
	},
}

const defaultReply = "¡Hola! Soy el asistente de Level-Up PC. Puedo ayudarte con precios, envíos, medios de pago, garantía y stock. ¿Qué necesitas?"

type ChatUseCase interface {
	Reply(ctx context.Context, message string) (domain.ChatReply, error)
}

type chatUseCase struct {
	client clients.ChatClient
	live   bool
	log    *logrus.Logger
}

// NewChatUseCase answers through client only when live is true (a provider key is configured).
func NewChatUseCase(client clients.ChatClient, live bool, logger *logrus.Logger) ChatUseCase {
	return &chatUseCase{
		client: client,
		live:   live,
		log:    logger,
	}
}

// Reply only fails on an empty message. Provider trouble always ends in a FallbackReply.
func (uc *chatUseCase) Reply(ctx context.Context, message string) (domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		uc.log.Warn("Use Case: Chat request without message")
		return domain.ChatReply{}, fmt.Errorf("message is required: %w", domain.ErrValidation)
	}

	if !uc.live || uc.client == nil {
		uc.log.Debug("Use Case: Chat provider not configured, using fallback reply")
		return domain.FallbackReply(FallbackReply(message)), nil
	}

	text, err := uc.client.Complete(ctx, chatSystemPrompt, message)
	if err != nil {
		uc.log.Warnf("Use Case: Chat provider failed, using fallback reply: %v", err)
		return domain.FallbackReply(FallbackReply(message)), nil
	}
	return domain.LiveReply(text), nil
}

// FallbackReply picks the canned answer for message.
func FallbackReply(message string) string {
	normalized := normalizeMessage(message)
	for _, canned := range cannedReplies {
		for _, trigger := range canned.triggers {
			if strings.Contains(normalized, trigger) {
				return canned.reply
			}
		}
	}
	return defaultReply
}

// normalizeMessage lowercases and strips diacritics so "Envío" matches "envio".
func normalizeMessage(message string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, message)
	if err != nil {
		stripped = message
	}
	return strings.ToLower(stripped)
}
