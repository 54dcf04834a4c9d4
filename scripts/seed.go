package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/dedup"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/embed"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/graph"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/internal/ingest"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/config"
	"github.com/xliberty2008x/dubovyk-ai-digital-brain/pkg/logger"
)

// Seeds the graph with a pair of near-duplicate WAN 2.5 posts through the
// Query API backend, so the duplicate detector has realistic data to chew on.
// The strict 0.88 threshold only links articles that are genuinely the same
// story retold.
func main() {
	threshold := flag.Float64("threshold", 0.88, "Similarity threshold for duplicate links")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Seeding WAN 2.5 article pair...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	provider := embed.Build(ctx, cfg)
	store, err := graph.NewQueryAPIStore(ctx, cfg.QueryAPIURL, cfg.Neo4jUser, cfg.Neo4jPassword, provider.Dimensions())
	if err != nil {
		log.Fatal("Failed to connect to the Query API", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("Failed to close graph backend", zap.Error(err))
		}
	}()

	detector := dedup.NewDetector(store, *threshold, cfg.SimilarityLimit)
	pipeline := ingest.NewPipeline(store, provider, detector)

	for _, article := range wanArticles(time.Now().UTC()) {
		matches, err := pipeline.IngestOne(ctx, article)
		if err != nil {
			log.Fatal("Failed to ingest article",
				zap.String("telegram_message_id", article.MessageID),
				zap.Error(err),
			)
		}
		log.Info("Article seeded",
			zap.String("telegram_message_id", article.MessageID),
			zap.Int("duplicates", len(matches)),
		)
	}
}

// wanArticles is the near-duplicate pair: the same WAN 2.5 release notes,
// first as an editorial draft and then as a conversational retelling.
func wanArticles(now time.Time) []graph.Article {
	topics := []string{"WAN 2.5", "Multimodal Models", "Video Generation", "Image Editing"}
	return []graph.Article{
		{
			MessageID: "1719",
			Title:     "WAN 2.5 — український драфт під відео",
			Body: "WAN 2.5: переклад списку нових фішок. Мультимодальність:" +
				" підтримка тексту, зображень, відео та аудіо на вході й виході." +
				" Ліпсінк для кількох персонажів у кадрі. Покращене розуміння" +
				" промптів завдяки мультимодальному тренуванню. 1080p HD, 10" +
				" секунд. Генерація та редагування зображень. Нативна" +
				" мультимодальна архітектура, спільне тренування на текстових," +
				" аудіо- та візуальних даних, RLHF для адаптації до людських" +
				" уподобань. Синхронізована генерація аудіо й відео, включно з" +
				" вокалом кількох осіб, звуковими ефектами та BGM. Редагування" +
				" зображень з піксельною точністю: злиття концептів," +
				" трансформація матеріалів, зміна кольорів продуктів." +
				" Деталі: https://wan.video/",
			URL:           "https://t.me/dubovykai/1719",
			PublishedAt:   now.Add(-5 * time.Minute),
			SourceChannel: "dubovykai",
			Topics:        topics,
		},
		{
			MessageID: "1720",
			Title:     "WAN 2.5: мультимодальна збірка в деталях",
			Body: "WAN 2.5 отримав україномовний опис для релізного відео, тож" +
				" зібрав головні тези у більш розмовному стилі. Справжня" +
				" мультимодальність: один стек для текстових, візуальних та" +
				" аудіо ввід/вивід. Синхронний ліпсінк навіть для кількох" +
				" персонажів в кадрі. Тренування одразу на тексті, зображеннях" +
				" та звуку, завдяки чому модель краще тримає промпт і структуру" +
				" сцени. Рідний 1080p / 10 секунд із контрольованою камерою." +
				" Редактор і генератор картинок у тому ж пайплайні. Уніфікований" +
				" мультимодальний фреймворк, спільна оптимізація модальностей" +
				" плюс RLHF. Точкові редакції: зміна кольорів продукту, злиття" +
				" концептів чи типографіка у брендових стилях." +
				" Детальніше: https://wan.video/",
			URL:           "https://t.me/dubovykai/1720",
			PublishedAt:   now,
			SourceChannel: "dubovykai",
			Topics:        topics,
		},
	}
}
