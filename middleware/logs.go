package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"PalkhiTrans/Models"

	"github.com/gofiber/fiber/v2"
)

// LogData is one request log line, written as JSON to logs/requests.log.
type LogData struct {
	Timestamp     time.Time     `json:"timestamp"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	URL           string        `json:"url"`
	Status        int           `json:"status"`
	Latency       time.Duration `json:"latency"`
	IP            string        `json:"ip"`
	UserAgent     string        `json:"user_agent"`
	Error         string        `json:"error,omitempty"`
	UserID        interface{}   `json:"user_id"`
	Username      string        `json:"username"`
	ContentLength int64         `json:"content_length"`
}

const requestLogPath = "logs/requests.log"

// RequestLogger logs every request to console and to logs/requests.log,
// tagging the authenticated user when Verify already ran.
func RequestLogger() fiber.Handler {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		if strings.HasPrefix(c.Path(), "/static") || c.Path() == "/health" {
			return c.Next()
		}

		err := c.Next()

		var userID interface{}
		var username string
		if user := c.Locals("user"); user != nil {
			if userStruct, ok := user.(Models.User); ok {
				userID = userStruct.ID
				username = userStruct.Name
			}
		}

		data := LogData{
			Timestamp:     start,
			Method:        c.Method(),
			Path:          c.Path(),
			URL:           c.OriginalURL(),
			Status:        c.Response().StatusCode(),
			Latency:       time.Since(start),
			IP:            c.IP(),
			UserAgent:     c.Get("User-Agent"),
			UserID:        userID,
			Username:      username,
			ContentLength: int64(len(c.Response().Body())),
		}
		if err != nil {
			data.Error = err.Error()
		}

		jsonData, _ := json.Marshal(data)
		log.Println(string(jsonData))
		logToFile(requestLogPath, string(jsonData))

		return err
	}
}

// ErrorLogger only records failed requests, into logs/errors.log.
func ErrorLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		if err == nil && c.Response().StatusCode() < 400 {
			return nil
		}

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			URL:       c.OriginalURL(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if err != nil {
			data.Error = err.Error()
		}

		jsonData, _ := json.Marshal(data)
		logToFile("logs/errors.log", string(jsonData))

		return err
	}
}

func logToFile(filePath, message string) {
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}
	defer file.Close()

	if len(message) > 0 && message[len(message)-1] != '\n' {
		message += "\n"
	}

	if _, err = file.WriteString(message); err != nil {
		fmt.Printf("Error writing to log file: %v\n", err)
	}
}
