package hero

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/herodex/pkg/middleware"
)

// loginPath は未認証リクエストのリダイレクト先。
const loginPath = "/admin/login"

// Server はヒーロー管理サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store はヒーローレコードのファイルストア。
	store *Store
	// jwtSecret はセッショントークン署名用の秘密鍵。
	jwtSecret string
}

// NewServer は新しいヒーロー管理サーバーを生成する。
// データファイルのパスと署名シークレットは環境変数から取得する。
func NewServer(port string) (*Server, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	dbPath := getEnvOr("HERO_DB_PATH", "data/heroes.json")
	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))

	s := &Server{
		router:    router,
		port:      port,
		store:     NewStore(dbPath),
		jwtSecret: jwtSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
// 読み取りを含むすべての/heroesルートはセッション認証を必須とする。
func (s *Server) setupRoutes() {
	// 管理者認証エンドポイント（認証不要）
	admin := s.router.Group("/admin")
	{
		admin.POST("/login", s.handleLogin())
		admin.GET("/logout", s.handleLogout())
	}

	// 認証必須のヒーローCRUDエンドポイント
	heroes := s.router.Group("/heroes")
	heroes.Use(middleware.SessionAuth(s.jwtSecret, loginPath))
	{
		// ヒーロー一覧取得
		heroes.GET("", s.handleList())
		// ヒーロー作成
		heroes.POST("", s.handleCreate())
		// ヒーロー更新
		heroes.PUT("/:id", s.handleUpdate())
		// ヒーロー削除
		heroes.DELETE("/:id", s.handleDelete())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "herodex"})
	})
}

// loginRequest はログインリクエストの構造。
// Content-Typeに応じてJSONまたはフォームエンコードで受け取る。
type loginRequest struct {
	// Username は管理者のユーザー名。
	Username string `json:"username" form:"username" binding:"required"`
	// Password はパスワード。受け取るが検証は行わない。
	Password string `json:"password" form:"password"`
}

// heroRequest はヒーロー作成・更新リクエストの構造。
// PowerLevelとSecretIdentityは文字列のまま受け取り、ストア側で型変換する。
type heroRequest struct {
	// SuperName はヒーロー名。必須項目。
	SuperName string `json:"superName" form:"superName"`
	// RealName は本名。
	RealName string `json:"realName" form:"realName"`
	// Superpower は能力の説明。
	Superpower string `json:"superpower" form:"superpower"`
	// PowerLevel は能力の強さ。
	PowerLevel string `json:"powerLevel" form:"powerLevel"`
	// SecretIdentity は正体を隠しているかどうか（"true" のみ真）。
	SecretIdentity string `json:"secretIdentity" form:"secretIdentity"`
}

// toParams はリクエストをストアの入力値に変換する。
func (r heroRequest) toParams() HeroParams {
	return HeroParams{
		SuperName:      r.SuperName,
		RealName:       r.RealName,
		Superpower:     r.Superpower,
		PowerLevel:     r.PowerLevel,
		SecretIdentity: r.SecretIdentity,
	}
}

// handleLogin は管理者ログインを処理するハンドラを返す。
// ユーザー名が空でなければセッショントークンを発行してCookieに設定する。
// パスワードの照合は行わない（元システムの互換動作）。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		token, err := middleware.GenerateSessionToken(s.jwtSecret, req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
			log.Printf("セッショントークン生成エラー: %v", err)
			return
		}

		middleware.SetSessionCookie(c, token)
		c.Redirect(http.StatusFound, "/heroes")
	}
}

// handleLogout はログアウトを処理するハンドラを返す。
// セッションCookieを破棄してログイン画面へリダイレクトする。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.ClearSessionCookie(c)
		c.Redirect(http.StatusFound, loginPath)
	}
}

// handleList はヒーロー一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		heroes, err := s.store.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ヒーロー一覧の取得に失敗しました"})
			log.Printf("ヒーロー一覧取得エラー: %v", err)
			return
		}

		c.JSON(http.StatusOK, heroes)
	}
}

// handleCreate はヒーロー作成を処理するハンドラを返す。
// 作成後はフロントエンドが一覧へ遷移できるようredirectToを含めて返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req heroRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		created, err := s.store.Create(req.toParams())
		if errors.Is(err, ErrSuperNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ヒーロー名（superName）は必須です"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ヒーローの作成に失敗しました"})
			log.Printf("ヒーロー作成エラー: %v", err)
			return
		}

		log.Printf("管理者 %s がヒーローを作成しました: id=%s", middleware.GetUsername(c), created.ID)
		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "ヒーローを作成しました",
			"redirectTo": "/heroes",
			"hero":       created,
		})
	}
}

// handleUpdate はヒーロー更新を処理するハンドラを返す。
// 指定されたIDのヒーローの可変項目をすべて置き換える。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req heroRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		updated, err := s.store.Update(c.Param("id"), req.toParams())
		if errors.Is(err, ErrHeroNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ヒーローが見つかりません"})
			return
		}
		if errors.Is(err, ErrSuperNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ヒーロー名（superName）は必須です"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ヒーローの更新に失敗しました"})
			log.Printf("ヒーロー更新エラー: %v", err)
			return
		}

		log.Printf("管理者 %s がヒーローを更新しました: id=%s", middleware.GetUsername(c), updated.ID)
		c.JSON(http.StatusOK, updated)
	}
}

// handleDelete はヒーロー削除を処理するハンドラを返す。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := s.store.Delete(c.Param("id"))
		if errors.Is(err, ErrHeroNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ヒーローが見つかりません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ヒーローの削除に失敗しました"})
			log.Printf("ヒーロー削除エラー: %v", err)
			return
		}

		log.Printf("管理者 %s がヒーローを削除しました: id=%s", middleware.GetUsername(c), c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "ヒーローを削除しました"})
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
