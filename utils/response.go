package utils

import "github.com/gofiber/fiber/v2"

// Response is the envelope every JSON endpoint returns.
func Response(success bool, message string, data interface{}) fiber.Map {
	body := fiber.Map{
		"success": success,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return body
}
