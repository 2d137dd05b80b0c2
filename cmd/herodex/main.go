// ヒーロー管理サービスのエントリポイント。
// 管理者ログインでセッションCookieを発行し、
// JSONファイルに永続化されるヒーローレコードのCRUDを提供する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/herodex/internal/hero"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	server, err := hero.NewServer(port)
	if err != nil {
		log.Fatalf("ヒーロー管理サーバーの初期化に失敗: %v", err)
	}

	log.Printf("ヒーロー管理サービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("ヒーロー管理サービスの起動に失敗: %v", err)
	}
}
