/*
 * @Description: 统一配置管理 (手动加载，文件默认值 + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2025-09-02 14:21:55
 * @LastEditTime: 2025-12-08 13:02:20
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeyMongoURI, KeyMongoDatabase,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
	KeySolrHost, KeySolrPort, KeySolrCore,
	KeyMLServiceURL,
	KeyJWTSecret,
	KeySMTPHost, KeySMTPPort, KeySMTPUser, KeySMTPPassword, KeySMTPFrom,
}

const (
	KeyServerPort  = "System.Port"
	KeyServerDebug = "System.Debug"

	KeyMongoURI      = "Mongo.URI"
	KeyMongoDatabase = "Mongo.Database"

	KeyRedisAddr     = "Redis.Addr"
	KeyRedisPassword = "Redis.Password"
	KeyRedisDB       = "Redis.DB"

	KeySolrHost = "Solr.Host"
	KeySolrPort = "Solr.Port"
	KeySolrCore = "Solr.Core"

	KeyMLServiceURL = "ML.ServiceURL"

	KeyJWTSecret = "Auth.JWTSecret"

	KeySMTPHost     = "SMTP.Host"
	KeySMTPPort     = "SMTP.Port"
	KeySMTPUser     = "SMTP.User"
	KeySMTPPassword = "SMTP.Password"
	KeySMTPFrom     = "SMTP.From"
)

type Config struct {
	vp *viper.Viper
}

// NewConfig 手动加载配置：先读 data/conf.ini 作为默认值，再用环境变量覆盖。
func NewConfig() (*Config, error) {
	vp := viper.New()
	filePath := "data/conf.ini"

	// --- 步骤 1: 使用 go-ini 从文件加载配置 (作为默认值) ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				// 构建 Viper 使用的 key，例如 "Mongo.URI"
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == "DEFAULT" {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Println("从 data/conf.ini 文件加载了默认配置。")
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	envPrefix := "ANHEYU"

	for _, key := range allKeys {
		// 构建环境变量名，例如 ANHEYU_MONGO_URI
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// SolrBaseURL 拼接出 Solr core 的根地址，例如 http://localhost:8983/solr/newscore
func (c *Config) SolrBaseURL() string {
	return fmt.Sprintf("http://%s:%s/solr/%s",
		c.GetString(KeySolrHost), c.GetString(KeySolrPort), c.GetString(KeySolrCore))
}

// createDefaultConfigFile 在首次启动时生成一份带注释的默认配置
func createDefaultConfigFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}

	content := `; anheyu-news 默认配置文件
; 所有配置均可通过 ANHEYU_ 前缀的环境变量覆盖，例如 ANHEYU_MONGO_URI

[System]
Port  = 8091
Debug = false

[Mongo]
URI      = mongodb://localhost:27017
Database = anheyu_news

[Redis]
Addr     =
Password =
DB       = 10

[Solr]
Host = localhost
Port = 8983
Core = newscore

[ML]
ServiceURL = http://localhost:8501

[Auth]
JWTSecret =

[SMTP]
Host     =
Port     = 587
User     =
Password =
From     =
`
	return os.WriteFile(filePath, []byte(content), 0o644)
}
