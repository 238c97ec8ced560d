package v1

import (
	"github.com/gofiber/fiber/v2"
)

// dashboardPage polls GET /status and mirrors the queue state on screen.
const dashboardPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Lectio Queue Dashboard</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 2em; }
    h1, h2 { text-align: center; }
    pre { background: #f4f4f4; padding: 10px; border-radius: 5px; overflow: auto; max-height: 700px; }
  </style>
</head>
<body>
  <h1>Lectio Queue Dashboard</h1>

  <div id="queue-status">
    <h2>Queue Status</h2>
    <pre id="queue-data">Loading...</pre>
  </div>

  <script>
    async function refresh() {
      try {
        const resp = await fetch("/status");
        const data = await resp.json();
        document.getElementById("queue-data").textContent = JSON.stringify(data, null, 2);
      } catch (err) {
        console.error("Status fetch failed:", err);
        document.getElementById("queue-data").textContent = "Error fetching queue status.";
      }
    }

    refresh();
    setInterval(refresh, 5000);
  </script>
</body>
</html>
`

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(dashboardPage)
}
