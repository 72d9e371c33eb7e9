package config

// Config 组件运行所需的完整配置（可选）。
// 功能：承载 Aggregate 服务端地址与凭证、本地 briefcase 目录以及拉取行为参数。
// 注意：组件本身不持久化配置；宿主可自行决定加载方式。
type Config struct {
	Server struct {
		BaseUrl  string // Aggregate 服务端地址，例如 https://aggregate.example.org
		Username string // 可选的 Basic Auth 用户名
		Password string // 可选的 Basic Auth 密码
	}

	StorageDir        string // 本地 briefcase 根目录
	EntriesPerBatch   int    // submissionList 单页条数，默认 100
	MaxConnections    int    // 与传输层一致的最大并发连接数，默认 8
	IncludeIncomplete bool   // 是否包含未完成提交
	StartFromDate     string // 可选的续传起始日期（yyyy-MM-dd），覆盖已保存的游标

	Mysql struct {
		DataSource string // 形如 user:pass@tcp(127.0.0.1:3306)/db?charset=utf8mb4&parseTime=true&loc=Local
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}
}
