package delivery

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HTML content for the fallback entry page
const htmlIndexPageContent = `
<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <title>Level-Up PC API</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-patch { color: #fca130; }
        .method-delete { color: #f93e3e; }
    </style>
</head>
<body>
    <h1>Level-Up PC API</h1>

    <h2>Catalog</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/api/products">/api/products</a></code> - All products and brands.</li>
        <li><span class="method method-get">GET</span> <code>/api/products/{id}</code> - One product.</li>
        <li><span class="method method-post">POST</span> <code>/api/products</code> - Create a product (admin). JSON body: <code>{"name": "string", "price": number, "category": "string", "brand": "string", "image": "string", "stock": int}</code></li>
        <li><span class="method method-patch">PATCH</span> <code>/api/products/{id}/stock</code> - Set stock (admin). JSON body: <code>{"stock": int}</code></li>
        <li><span class="method method-delete">DELETE</span> <code>/api/products/{id}</code> - Delete a product (admin).</li>
    </ul>
    <p>Admin routes take <code>Authorization: Bearer &lt;token&gt;</code> or <code>?admin_token=</code>.</p>

    <h2>Assistant &amp; checkout</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/api/chat</code> - JSON body: <code>{"message": "string"}</code></li>
        <li><span class="method method-post">POST</span> <code>/api/create_preference</code> - JSON body: <code>{"title": "string", "price": number, "quantity": int, "items": [], "payerEmail": "string"}</code></li>
        <li><span class="method method-get">GET</span> <code><a href="/api/mp_whoami">/api/mp_whoami</a></code> - Payment account diagnostics.</li>
    </ul>
</body>
</html>
`

type PageHandler struct {
	staticDir string
	log       *logrus.Logger
}

func NewPageHandler(staticDir string, logger *logrus.Logger) *PageHandler {
	return &PageHandler{
		staticDir: staticDir,
		log:       logger,
	}
}

func (h *PageHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.GET("/health", h.Health)
}

// Index serves the built frontend entry page when one is deployed next to the API.
func (h *PageHandler) Index(c *gin.Context) {
	if h.staticDir != "" {
		index := filepath.Join(h.staticDir, "index.html")
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			c.File(index)
			return
		}
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlIndexPageContent))
}

func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
