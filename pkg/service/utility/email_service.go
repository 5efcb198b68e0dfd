/*
 * @Description: 业务邮件发送（每日新闻摘要）
 * @Author: 安知鱼
 * @Date: 2025-12-09 14:02:11
 * @LastEditTime: 2025-12-09 16:30:47
 * @LastEditors: 安知鱼
 */
package utility

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/config"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

// EmailService 定义了发送业务邮件的接口
type EmailService interface {
	// SendDailyDigest 给用户发送每日推荐新闻摘要
	SendDailyDigest(ctx context.Context, toEmail, nickname string, stories []model.ShortStory) error
	SendTestEmail(ctx context.Context, toEmail string) error
}

// emailService 是 EmailService 接口的实现
type emailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{cfg: cfg}
}

var digestTemplate = template.Must(template.New("digest").Parse(`<p>你好，{{.Nickname}}！</p>
<p>这是为你精选的今日新闻：</p>
<ul>
{{range .Stories}}  <li><a href="{{.URL}}">{{.Title}}</a>{{if .Source}} — {{.Source}}{{end}}</li>
{{end}}</ul>
<p>祝阅读愉快。</p>`))

// SendDailyDigest 组装并发送每日摘要，没有推荐内容时跳过
func (s *emailService) SendDailyDigest(ctx context.Context, toEmail, nickname string, stories []model.ShortStory) error {
	if len(stories) == 0 {
		log.Printf("用户 %s 今日没有可推送的新闻，跳过摘要邮件", toEmail)
		return nil
	}
	var body bytes.Buffer
	data := struct {
		Nickname string
		Stories  []model.ShortStory
	}{Nickname: nickname, Stories: stories}
	if err := digestTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("渲染摘要邮件失败: %w", err)
	}
	subject := fmt.Sprintf("你的今日新闻摘要（%d 条）", len(stories))
	return s.send(toEmail, subject, body.String())
}

// SendTestEmail 发送一封测试邮件，用于校验 SMTP 配置
func (s *emailService) SendTestEmail(ctx context.Context, toEmail string) error {
	body := `<p>你好！</p>
<p>这是一封测试邮件。如果您收到了这封邮件，那么证明邮件服务配置正确。</p>`
	return s.send(toEmail, "这是一封测试邮件", body)
}

func (s *emailService) send(to, subject, body string) error {
	host := s.cfg.GetString(config.KeySMTPHost)
	portStr := s.cfg.GetString(config.KeySMTPPort)
	username := s.cfg.GetString(config.KeySMTPUser)
	password := s.cfg.GetString(config.KeySMTPPassword)
	senderEmail := s.cfg.GetString(config.KeySMTPFrom)

	if host == "" || senderEmail == "" {
		log.Printf("⚠️  SMTP 未配置，跳过发送给 %s 的邮件", to)
		return nil
	}
	if _, err := strconv.Atoi(portStr); err != nil {
		return fmt.Errorf("SMTP 端口配置无效 '%s': %w", portStr, err)
	}

	headers := map[string]string{
		"From":         senderEmail,
		"To":           to,
		"Subject":      subject,
		"Content-Type": "text/html; charset=UTF-8",
	}
	var messageBuilder strings.Builder
	for k, v := range headers {
		messageBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	messageBuilder.WriteString("\r\n")
	messageBuilder.WriteString(body)
	message := []byte(messageBuilder.String())

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	addr := net.JoinHostPort(host, portStr)

	conn, err := net.DialTimeout("tcp", addr, 15*time.Second)
	if err != nil {
		return fmt.Errorf("连接 SMTP 服务器失败: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("创建 SMTP 客户端失败: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("STARTTLS 失败: %w", err)
		}
	}
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP 认证失败: %w", err)
		}
	}
	if err := client.Mail(senderEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(message); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	log.Printf("✅ 邮件已发送给 %s: %s", to, subject)
	return client.Quit()
}
