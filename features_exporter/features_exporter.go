// features_exporter.go
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"uttt_go/internal/config"
	"uttt_go/internal/features"
	"uttt_go/internal/logging"
	"uttt_go/internal/store"
)

func processFile(fn string, out chan<- []string, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("file", fn).Interface("panic", r).Msg("panic processing file")
		}
	}()

	rows, err := store.ReadRecords(fn)
	if err != nil {
		log.Error().Err(err).Str("file", fn).Msg("read records")
		return
	}
	if len(rows) == 0 {
		log.Warn().Str("file", fn).Msg("skip empty file")
		return
	}

	skipped := 0
	for _, tr := range rows {
		// ① 特征
		feats, err := features.Extract(tr)
		if err != nil {
			skipped++
			continue
		}

		// ② 写 CSV：特征 + 标签 + 对局 id
		row := make([]string, 0, len(feats)+2)
		for _, v := range feats {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(float64(tr.Value), 'f', 0, 32), tr.GameID)
		out <- row
	}
	if skipped > 0 {
		log.Warn().Str("file", fn).Int("skipped", skipped).Msg("rows skipped")
	}
}

func main() {
	cfg := config.Load()
	cfg.BindStorageFlags(flag.CommandLine)
	outPath := flag.String("out", "features.csv", "输出 CSV 路径")
	flag.Parse()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	files, err := filepath.Glob(filepath.Join(cfg.RecordsDir, "batch_*.parquet"))
	if err != nil {
		log.Fatal().Err(err).Msg("glob")
	}

	outFile, err := os.OpenFile(*outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		log.Fatal().Err(err).Msg("create output file")
	}
	defer outFile.Close()

	bw := bufio.NewWriter(outFile)
	writer := csv.NewWriter(bw)
	defer bw.Flush() // 一定要把 bufio 的缓冲也 flush 到磁盘

	header := append(append([]string{}, features.Names...), "value", "game_id")
	if err := writer.Write(header); err != nil {
		log.Fatal().Err(err).Msg("write header")
	}

	var wg sync.WaitGroup
	rows := make(chan []string, 1000)
	done := make(chan int)

	// 写 CSV 的 goroutine
	go func() {
		n := 0
		for row := range rows {
			if err := writer.Write(row); err != nil {
				log.Error().Err(err).Msg("write row")
				continue
			}
			n++
		}
		writer.Flush()
		done <- n
	}()

	// 信号量：最多 runtime.NumCPU() 个并发 worker
	sem := make(chan struct{}, runtime.NumCPU())

	for _, fn := range files {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(fn string) {
			defer func() { <-sem }() // release
			processFile(fn, rows, &wg)
		}(fn)
	}

	wg.Wait()
	close(rows)
	n := <-done
	if err := writer.Error(); err != nil {
		log.Error().Err(err).Msg("flush csv")
	}
	log.Info().Int("files", len(files)).Int("rows", n).Str("out", *outPath).Msg("done exporting features")
}

// go build -ldflags="-s -w" -o features_exporter ./features_exporter
