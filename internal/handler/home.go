package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const homePage = `<!DOCTYPE html>
<html>
<head><title>Video Catalog</title></head>
<body>
<h1>Video Catalog</h1>
<ul>
<li><code>GET|POST /video</code></li>
<li><code>GET|PUT|DELETE /video/{id}</code></li>
<li><code>DELETE /undelete/{id}</code></li>
<li><code>GET|POST /category</code></li>
<li><code>GET|PUT|DELETE /category/{id}</code></li>
<li><code>GET /categorized_video</code></li>
</ul>
</body>
</html>
`

// Home serves the landing page.
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}
