// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// Cookieベースのセッショントークン検証、パニックリカバリ、
// CORS設定など、ルーティング層の手前で行う共通処理を含む。
package middleware
