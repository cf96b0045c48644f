package main

import (
	"bytes"
	"context"
	"flag"
	"lawyer_tools/config"
	"lawyer_tools/services"
	"log"
	"os"
	"path/filepath"
	"time"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func main() {
	output := flag.String("o", "speed_limits.xlsx", "output file")
	upload := flag.Bool("upload", false, "also upload the workbook to storage under SPEED_LIMITS_KEY")
	flag.Parse()

	buf, err := services.GenerateSpeedLimitWorkbook(services.DefaultSpeedLimitRules)
	if err != nil {
		log.Fatalf("Failed to generate workbook: %v", err)
	}
	data := buf.Bytes()

	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Wrote %d rules to %s", len(services.DefaultSpeedLimitRules), *output)

	if !*upload {
		return
	}

	cfg := config.Load()
	services.InitializeStorage(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	result, err := services.Storage.UploadReader(ctx, bytes.NewReader(data), cfg.SpeedLimitsKey, xlsxContentType, int64(len(data)))
	if err != nil {
		log.Fatalf("Failed to upload workbook: %v", err)
	}
	log.Printf("Uploaded %s (%d bytes)", result.Key, result.FileSize)
}
