package example

import (
	"context"
	"time"

	"github.com/FrankApiyo/briefcase/client"
	"github.com/FrankApiyo/briefcase/config"
	"github.com/FrankApiyo/briefcase/form"
	"github.com/FrankApiyo/briefcase/job"
	"github.com/FrankApiyo/briefcase/logging"
	"github.com/FrankApiyo/briefcase/prefs"
	"github.com/FrankApiyo/briefcase/pull"
)

// RunPull 演示最小化接线：加载配置，列出远端表单，逐个组装拉取任务，
// 由 Runner 以受限并发执行，结束后保存每个表单的续传游标。
// 进程收到 SIGINT/SIGTERM 时协作式取消：在途下载完成后不再发起新的请求。
func RunPull(cfgPath string) error {
	cfg := config.MustLoad(cfgPath)

	var cred *client.Credentials
	if cfg.Server.Username != "" {
		cred = &client.Credentials{Username: cfg.Server.Username, Password: cfg.Server.Password}
	}
	api, err := client.NewHTTPAggregateAPI(cfg.Server.BaseUrl, cred, cfg.MaxConnections)
	if err != nil {
		return err
	}

	engine := pull.New(api,
		pull.WithBriefcaseDir(cfg.StorageDir),
		pull.WithEntriesPerBatch(cfg.EntriesPerBatch),
		pull.WithIncludeIncomplete(cfg.IncludeIncomplete),
		pull.WithMaxParallelPulls(cfg.MaxConnections),
		pull.WithOnEvent(func(e form.FormStatusEvent) {
			logging.L().Info(context.Background(), "status", "form", e.FormID, "msg", e.Status)
		}),
	)

	rs, stop := job.WithSignalCancel(context.Background())
	defer stop()

	forms, err := api.FetchFormList(rs.Context())
	if err != nil {
		return err
	}

	p := prefs.NewMemPrefs()
	runner := job.NewRunner(rs.Context(), cfg.MaxConnections)
	runner.OnError(func(err error) {
		logging.L().Error(context.Background(), "pull failed", "err", err)
	})

	for _, def := range forms {
		f := form.NewFormStatus(def.FormID, def.Name, def.ManifestURL)
		start := startCursor(p, cfg, def.FormID)
		job.LaunchAsync(runner, engine.Pull(f, start), func(r pull.PullResult) {
			if r.HasCursor() {
				pull.StoreCursor(p, r.Form().FormID, r.LastCursor())
			}
		})
	}
	runner.WaitAll()
	return nil
}

// startCursor 选择续传起点：配置的起始日期优先于已保存的游标。
func startCursor(p prefs.Preferences, cfg config.Config, formID string) *pull.Cursor {
	if cfg.StartFromDate != "" {
		if d, err := time.Parse("2006-01-02", cfg.StartFromDate); err == nil {
			c := pull.CursorOfDate(d)
			return &c
		}
	}
	if c, ok := pull.ReadCursor(p, formID); ok {
		return &c
	}
	return nil
}
