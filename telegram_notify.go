package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/mozillazg/go-unidecode"

	"bizstats/config"
	"bizstats/domain/models"
	"bizstats/plot"
)

// notifyTelegram sends a PNG snapshot of each rate chart to the configured
// chat. Optional: silently disabled unless both TG_TOKEN and TG_CHAT_ID are
// set.
func notifyTelegram(cfg *config.Config, results []*PipelineResult) {
	if cfg.TgToken == "" || cfg.TgChatID == 0 {
		return
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Printf("telegram init error: %v", err)
		return
	}
	for _, result := range results {
		if result.Pipeline.Mode != models.ModeLabelRate {
			continue
		}
		// go-chart's default font has no CJK glyphs, transliterate for PNG
		labels := make([]string, len(result.Rates))
		values := make([]float64, len(result.Rates))
		for i, e := range result.Rates {
			labels[i] = unidecode.Unidecode(e.Label)
			values[i] = e.Percent
		}
		graph, err := plot.DrawCategoryBar(labels, values, unidecode.Unidecode(result.Pipeline.Title))
		if err != nil {
			log.Printf("snapshot render error for %s: %v", result.Pipeline.Title, err)
			continue
		}
		sendChartSnapshot(bot, cfg.TgChatID, result.Pipeline, graph)
	}
}

// sendChartSnapshot delivers the rendered PNG, as a photo when it is small
// enough for Telegram's photo compression and as a document otherwise.
func sendChartSnapshot(bot *tgbotapi.BotAPI, chatID int64, p Pipeline, graph []byte) {
	fileName := fmt.Sprintf("%s_%s.png", slugify(p.Title), time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}
	caption := fmt.Sprintf("Dashboard snapshot: %s (source %s)", p.Title, p.Source.Name)

	const maxSizePhoto = 150000
	if len(graph) < maxSizePhoto {
		docMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		docMsg.Caption = caption
		if _, err := bot.Send(docMsg); err != nil {
			log.Printf("error sending snapshot %s: %v", fileName, err)
		}
		return
	}
	docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
	docMsg.Caption = caption
	if _, err := bot.Send(docMsg); err != nil {
		log.Printf("error sending snapshot %s: %v", fileName, err)
	}
}
