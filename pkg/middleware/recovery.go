package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// 管理APIのハンドラでパニックが発生しても、内容をログに残して
// 500エラーを返し、サーバー本体は停止させない。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("管理APIでパニックが発生: %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "サーバー内部でエラーが発生しました",
				})
			}
		}()
		c.Next()
	}
}
