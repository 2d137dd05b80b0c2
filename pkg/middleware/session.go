package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims は管理者セッショントークンのクレーム（ペイロード）を表す。
// 管理者のユーザー名をリクエスト間で伝播するために使用する。
type SessionClaims struct {
	jwt.RegisteredClaims
	// Username はログインした管理者のユーザー名。
	Username string `json:"username"`
}

// CookieName はセッショントークンを格納するCookieの名前。
const CookieName = "token"

// sessionTTL はセッショントークンの有効期間。
// 発行から24時間が経過したトークンは検証に失敗する。
const sessionTTL = 24 * time.Hour

// GenerateSessionToken はユーザー名から署名付きセッショントークンを生成する。
// ログイン成功時にハンドラが呼び出す。
func GenerateSessionToken(secret, username string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "herodex-admin",
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("セッショントークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// SessionAuth はCookieのセッショントークンを検証するGinミドルウェアを返す。
// トークンが無い場合はログイン画面へリダイレクトする。
// トークンが不正・期限切れの場合はCookieを破棄してからリダイレクトする。
// 検証に成功した場合、コンテキストに "username" を設定する。
func SessionAuth(secret, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// 失効したトークンは以後送らせない
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// SetSessionCookie はセッショントークンをHttpOnly Cookieとして設定する。
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, int(sessionTTL.Seconds()), "/", "", false, true)
}

// ClearSessionCookie はセッションCookieを破棄する。
// サーバー側に失効リストは持たないため、失効はクライアント側の破棄のみで行う。
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// GetUsername はGinコンテキストからログイン中のユーザー名を取得する。
// SessionAuthミドルウェアが事前に適用されている必要がある。
func GetUsername(c *gin.Context) string {
	username, _ := c.Get("username")
	if name, ok := username.(string); ok {
		return name
	}
	return ""
}
