package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"feeding_notification_bot/internal/app"
	"feeding_notification_bot/internal/domain/animal"
	"feeding_notification_bot/internal/domain/food"
	"feeding_notification_bot/internal/domain/notification"
	"feeding_notification_bot/internal/domain/owner"
	"feeding_notification_bot/internal/domain/schedule"
	idb "feeding_notification_bot/internal/infra/database" // For ErrOwnerNotFound

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterOwnerHandlers wires the owner-facing commands. The bot surface is
// read-mostly: feeding notifications are pushed by the engine, and owners
// use these commands to check their inbox and upcoming feedings.
func RegisterOwnerHandlers(
	ctx context.Context,
	b *telebot.Bot,
	ownerRepo owner.Repository,
	notifRepo notification.Repository,
	animalRepo animal.Repository,
	foodRepo food.Repository,
	scheduleRepo schedule.Repository,
	careService *app.CareService,
	baseLogger *logrus.Entry,
) {
	handlerLogger := baseLogger.WithField("handler_group", "owner_commands")

	resolveOwner := func(c telebot.Context, logCtx *logrus.Entry) (*owner.Owner, error) {
		o, err := ownerRepo.GetByTelegramID(ctx, c.Sender().ID)
		if err == nil {
			if !o.IsActive {
				logCtx.WithField("owner_id", o.ID).Info("Inactive owner")
				return nil, c.Send("Your account is inactive. Please contact support.")
			}
			return o, nil
		}
		if err != idb.ErrOwnerNotFound {
			logCtx.WithError(err).Error("Error resolving owner by Telegram ID")
			return nil, c.Send("Something went wrong while checking your account. Please try again later.")
		}
		logCtx.Info("Unknown Telegram user")
		return nil, c.Send("Hi! I send feeding reminders for your animals. Link this chat from your account settings to get started.")
	}

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /start command")

		o, err := resolveOwner(c, logCtx)
		if o == nil {
			return err
		}
		unread, countErr := notifRepo.CountUnreadByOwner(ctx, o.ID)
		if countErr != nil {
			logCtx.WithError(countErr).Error("Error counting unread notifications")
			return c.Send(fmt.Sprintf("Hi, %s! I'll let you know whenever one of your animals is due a feeding.", o.Name))
		}
		return c.Send(fmt.Sprintf("Hi, %s! I'll let you know whenever one of your animals is due a feeding. You have %d unread notification(s) — use /notifications to see them.", o.Name, unread))
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("Available commands:\n\n")
		helpText.WriteString("`/notifications`\n - Show unread feeding notifications and mark them read.\n\n")
		helpText.WriteString("`/animals`\n - List your animals with their next feeding time.\n\n")
		helpText.WriteString("`/feed <animal> <food> <amount>`\n - Record a feeding: decrements the food stock and logs it.\n\n")
		helpText.WriteString("`/help`\n - Show this help message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/notifications", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/notifications").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /notifications command")

		o, err := resolveOwner(c, logCtx)
		if o == nil {
			return err
		}

		unread, err := notifRepo.ListUnreadByOwner(ctx, o.ID)
		if err != nil {
			logCtx.WithError(err).Error("Error listing unread notifications")
			return c.Send("Could not load your notifications right now. Please try again later.")
		}
		if len(unread) == 0 {
			return c.Send("No unread notifications. All feedings are on track.")
		}

		var reply strings.Builder
		reply.WriteString(fmt.Sprintf("You have %d unread notification(s):\n", len(unread)))
		for _, n := range unread {
			reply.WriteString(fmt.Sprintf("• %s (%s)\n", n.Message, n.CreatedAt.Format("Jan 2 15:04")))
			if err := notifRepo.MarkRead(ctx, n.ID); err != nil {
				logCtx.WithError(err).WithField("notification_id", n.ID).Error("Error marking notification read")
			}
		}
		return c.Send(reply.String())
	})

	b.Handle("/animals", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/animals").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /animals command")

		o, err := resolveOwner(c, logCtx)
		if o == nil {
			return err
		}

		animals, err := animalRepo.ListByOwner(ctx, o.ID)
		if err != nil {
			logCtx.WithError(err).Error("Error listing animals")
			return c.Send("Could not load your animals right now. Please try again later.")
		}
		if len(animals) == 0 {
			return c.Send("You have no animals registered yet.")
		}

		var reply strings.Builder
		reply.WriteString("Your animals:\n")
		for _, a := range animals {
			reply.WriteString(fmt.Sprintf("• %s (%s)", a.Name, a.Species))
			schedules, schedErr := scheduleRepo.ListByAnimal(ctx, a.ID)
			if schedErr != nil {
				logCtx.WithError(schedErr).WithField("animal_id", a.ID).Error("Error listing schedules for animal")
			} else if len(schedules) > 0 {
				next := schedules[0].NextDue
				for _, s := range schedules[1:] {
					if s.NextDue.Before(next) {
						next = s.NextDue
					}
				}
				reply.WriteString(fmt.Sprintf(" — next feeding %s", next.Format("Mon Jan 2 15:04")))
			}
			reply.WriteString("\n")
		}
		return c.Send(reply.String())
	})

	b.Handle("/feed", func(c telebot.Context) error {
		logCtx := handlerLogger.WithField("command", "/feed").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /feed command")

		o, err := resolveOwner(c, logCtx)
		if o == nil {
			return err
		}

		args := c.Args()
		if len(args) != 3 {
			return c.Send("Usage: /feed <animal> <food> <amount>")
		}
		animalName, foodName := args[0], args[1]
		amount, parseErr := strconv.ParseFloat(args[2], 64)
		if parseErr != nil || amount <= 0 {
			return c.Send("The amount must be a positive number, e.g. /feed Rex kibble 0.5")
		}

		target, findErr := findAnimalByName(ctx, animalRepo, o.ID, animalName)
		if findErr != nil {
			logCtx.WithError(findErr).Error("Error resolving animal by name")
			return c.Send("Could not look up your animals right now. Please try again later.")
		}
		if target == nil {
			return c.Send(fmt.Sprintf("You have no animal named %q.", animalName))
		}

		stock, findErr := findFoodByName(ctx, foodRepo, o.ID, foodName)
		if findErr != nil {
			logCtx.WithError(findErr).Error("Error resolving food by name")
			return c.Send("Could not look up your food stocks right now. Please try again later.")
		}
		if stock == nil {
			return c.Send(fmt.Sprintf("You have no food stock named %q.", foodName))
		}

		entry, feedErr := careService.RecordFeeding(ctx, o.ID, target.ID, stock.ID, amount)
		if feedErr != nil {
			if feedErr == app.ErrInsufficientFood {
				return c.Send(fmt.Sprintf("Not enough %s left: %.2f %s in stock.", stock.Name, stock.Amount, stock.Unit))
			}
			logCtx.WithError(feedErr).Error("Error recording feeding")
			return c.Send("Could not record the feeding. Please try again later.")
		}
		return c.Send(entry.Description)
	})
}

func findAnimalByName(ctx context.Context, repo animal.Repository, ownerID int64, name string) (*animal.Animal, error) {
	animals, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, a := range animals {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, nil
}

func findFoodByName(ctx context.Context, repo food.Repository, ownerID int64, name string) (*food.Food, error) {
	foods, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, f := range foods {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return nil, nil
}
