package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	cssVersion   string
	appJSVersion string
	assetMu      sync.RWMutex
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	css := computeFileHash(filepath.Join(staticDir, "css", "style.css"))
	js := computeFileHash(filepath.Join(staticDir, "js", "app.js"))

	assetMu.Lock()
	cssVersion, appJSVersion = css, js
	assetMu.Unlock()

	log.Printf("[INFO] Asset versions initialized: css=%s js=%s", GetCSSVersion(context.Background()), GetAppJSVersion(context.Background()))
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the CSS file version hash for cache busting.
// ctx keeps the signature in line with the other template helpers.
func GetCSSVersion(ctx context.Context) string {
	return versionOrDefault(&cssVersion)
}

// GetAppJSVersion returns the app.js file version hash for cache busting
func GetAppJSVersion(ctx context.Context) string {
	return versionOrDefault(&appJSVersion)
}

func versionOrDefault(v *string) string {
	assetMu.RLock()
	defer assetMu.RUnlock()
	if *v == "" {
		return "1"
	}
	return *v
}
