package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/reusedev/sbi-hub/config"
	"github.com/reusedev/sbi-hub/internal/components/mysql"
	"github.com/reusedev/sbi-hub/internal/consts"
	"github.com/reusedev/sbi-hub/internal/modules/cache"
	"github.com/reusedev/sbi-hub/internal/modules/history"
	"github.com/reusedev/sbi-hub/internal/modules/image"
	"github.com/reusedev/sbi-hub/internal/modules/logs"
	"github.com/reusedev/sbi-hub/internal/modules/model"
	"github.com/reusedev/sbi-hub/internal/modules/preference"
	"github.com/reusedev/sbi-hub/internal/modules/queue"
	"github.com/reusedev/sbi-hub/internal/modules/sbi"
	"github.com/reusedev/sbi-hub/internal/modules/storage"
	"github.com/reusedev/sbi-hub/internal/modules/storage/ali"
	"github.com/reusedev/sbi-hub/internal/modules/storage/local"
	"github.com/reusedev/sbi-hub/internal/service/http"
	"github.com/reusedev/sbi-hub/internal/service/http/handler"
	"github.com/reusedev/sbi-hub/tools"
)

var (
	httpPort   string
	configPath string
)

func init() {
	flag.StringVar(&httpPort, "http-port", ":80", "listen http port")
	flag.StringVar(&configPath, "config", "config.yml", "config file path")
}

func main() {
	flag.Parse()
	config.Init(configPath)
	logs.InitLogger()
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	queue.InitRecordQueue(ctx, wg)

	cfg := config.GConfig
	defaults := defaultPreferences(cfg.Preferences)
	deps := handler.Dependencies{
		DefaultPreferences: defaults,
		URLExpires:         tools.PanicOnError(time.ParseDuration(cfg.URLExpires)),
		MaxImageBytes:      cfg.Search.MaxImageBytes,
	}
	opts := []sbi.Option{
		sbi.WithCache(cache.ThumbnailCacheManager(), cfg.Search.CacheTTLDuration()),
		sbi.WithMaxPixels(cfg.Search.MaxImagePixels),
	}
	var fetcherOpts []image.FetcherOption
	if cfg.Search.AllowPrivateNetworks {
		fetcherOpts = append(fetcherOpts, image.WithPrivateNetworks())
	}
	if cfg.HistoryEnabled {
		mysql.CreateDataBase(cfg.MySQL)
		mysql.InitMySQL(cfg.MySQL)
		if err := mysql.DB.AutoMigrate(&model.SearchRecord{}, &model.Preference{}); err != nil {
			panic(err)
		}
		deps.Preferences = preference.NewDBStore(mysql.DB)
		deps.Recorder = history.NewRecorder(mysql.DB, newArchiver(cfg), queue.RecordQueue)
		opts = append(opts, sbi.WithRecorder(deps.Recorder))
	} else {
		deps.Preferences = preference.StaticStore{}
	}
	deps.Search = sbi.NewService(
		sbi.NewBuilder(cfg.Search.Server, cfg.Search.PageTitle),
		image.NewFetcher(cfg.Search.FetchTimeoutDuration(), cfg.Search.MaxImageBytes, fetcherOpts...),
		opts...,
	)
	handler.Init(deps)
	logs.Logger.Info().
		Bool("history", cfg.HistoryEnabled).
		Bool("storage", cfg.StorageEnabled).
		Str("server", cfg.Search.Server).
		Msg("sbi-hub starting")

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	go func(ch chan os.Signal) {
		<-ch
		cancel()
		wg.Wait()
		os.Exit(0)
	}(osSignal)
	http.Serve(httpPort)
}

func defaultPreferences(p config.Preferences) preference.Preferences {
	return preference.Preferences{
		UseGetRequests: p.GetURL,
		HoverOption:    consts.HoverOption(p.Option),
		HoverMinWidth:  *p.HoverMinDims,
		HoverMinHeight: *p.HoverMinDims,
	}
}

// newArchiver returns a nil interface, not a typed nil, when storage is off.
func newArchiver(cfg *config.Config) storage.Archiver {
	if !cfg.StorageEnabled {
		return nil
	}
	switch consts.StorageSupplier(cfg.StorageSupplier) {
	case consts.AliOSS:
		ali.InitOSS(cfg.AliOss)
		return ali.OssClient
	default:
		return local.NewArchiver(cfg.Local.Directory)
	}
}
