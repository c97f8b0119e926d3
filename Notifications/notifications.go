package Notifications

import (
	"fmt"
	"log"
	"os"
	"sync"

	"PalkhiTrans/Models"

	"github.com/slack-go/slack"
)

var (
	slackOnce    sync.Once
	slackClient  *slack.Client
	slackChannel string
)

// initSlack reads SLACK_BOT_TOKEN and SLACK_CHANNEL_ID once. With either
// unset the sink stays disabled and Notify becomes a no-op.
func initSlack() {
	token := os.Getenv("SLACK_BOT_TOKEN")
	slackChannel = os.Getenv("SLACK_CHANNEL_ID")
	if token == "" || slackChannel == "" {
		log.Println("Slack notifications disabled: SLACK_BOT_TOKEN or SLACK_CHANNEL_ID not set")
		return
	}
	slackClient = slack.New(token)
}

// Notify posts a message to the billing Slack channel. Fire and forget: the
// caller never waits and delivery failures are only logged.
func Notify(format string, args ...interface{}) {
	slackOnce.Do(initSlack)
	if slackClient == nil {
		return
	}

	text := fmt.Sprintf(format, args...)
	go func() {
		_, _, err := slackClient.PostMessage(slackChannel, slack.MsgOptionText(text, false))
		if err != nil {
			log.Printf("Error sending Slack notification: %v", err)
		}
	}()
}

// Audit records who did what to which record. Runs async so a slow or broken
// database write never delays the request that triggered it.
func Audit(actor, action, entity string, entityID uint, details string) {
	go func() {
		if Models.DB == nil {
			return
		}
		entry := Models.AuditLog{
			Actor:    actor,
			Action:   action,
			Entity:   entity,
			EntityID: entityID,
			Details:  details,
		}
		if err := Models.DB.Create(&entry).Error; err != nil {
			log.Printf("Error writing audit log (%s %s %d): %v", action, entity, entityID, err)
		}
	}()
}
