// Package portal drives the Lectio web portal through a headless Chrome
// session. One browser instance is launched per send and torn down with it;
// the caller owns concurrency.
package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DOM ids of the Lectio login and message pages. Lectio's ASP.NET form ids
// are stable across schools, only the school id in the URL varies.
const (
	selLoginTitle   = `.maintitle`
	selUsername     = `#username`
	selPassword     = `#password`
	selLoginSubmit  = `#m_Content_submitbtn2`
	selNewMessage   = `#s_m_Content_Content_NewMessageLnk`
	selRecipient    = `#s_m_Content_Content_MessageThreadCtrl_addRecipientDD_inp`
	selSubject      = `#s_m_Content_Content_MessageThreadCtrl_MessagesGV_ctl02_EditModeHeaderTitleTB_tb`
	selNoReplyCheck = `#s_m_Content_Content_MessageThreadCtrl_RepliesNotAllowedChkBox`
	selBody         = `#s_m_Content_Content_MessageThreadCtrl_MessagesGV_ctl02_EditModeContentBBTB_TbxNAME_tb`
	selSendButton   = `#s_m_Content_Content_MessageThreadCtrl_MessagesGV_ctl02_SendMessageBtn`
	selSentMarker   = `#s_m_Content_Content_MessageThreadCtrl_MessagesGV_ctl02_ctl03_innerBtn`
)

const loginPageMarker = "Lectio Log ind"

type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Headless    bool          `mapstructure:"headless"`
	StepTimeout time.Duration `mapstructure:"step_timeout"`
}

type Credentials struct {
	PortalID string
	Username string
	Password string
}

type Message struct {
	Recipient  string
	Subject    string
	Body       string
	AllowReply bool
}

type Client interface {
	SendMessage(ctx context.Context, creds Credentials, msg Message) error
}

type chromeClient struct {
	cfg    Config
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.lectio.dk"
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = 30 * time.Second
	}

	return &chromeClient{cfg: cfg, logger: logger}
}

// SendMessage runs the whole login, navigate, compose, submit sequence in a
// fresh browser. Any step failure aborts the remainder; there is no retry
// here, redelivery policy belongs to the queue.
func (c *chromeClient) SendMessage(ctx context.Context, creds Credentials, msg Message) error {
	browserCtx, cancel := c.newBrowserContext(ctx)
	defer cancel()

	if err := c.login(browserCtx, creds); err != nil {
		return err
	}

	if err := c.openCompose(browserCtx, creds.PortalID); err != nil {
		return err
	}

	if err := c.compose(browserCtx, msg); err != nil {
		return err
	}

	return c.submit(browserCtx)
}

func (c *chromeClient) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
	)
	if !c.cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	return taskCtx, func() {
		taskCancel()
		allocCancel()
	}
}

func (c *chromeClient) login(ctx context.Context, creds Credentials) error {
	loginURL := fmt.Sprintf("%s/lectio/%s/login.aspx?prevurl=default.aspx&type=brugernavn",
		c.cfg.BaseURL, creds.PortalID)

	c.logger.Debug("opening login page", zap.String("portalID", creds.PortalID))

	var pageTitle string
	err := c.run(ctx,
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible(selLoginTitle, chromedp.ByQuery),
		chromedp.Text(selLoginTitle, &pageTitle, chromedp.ByQuery),
	)
	if err != nil {
		return err
	}

	if !strings.Contains(pageTitle, loginPageMarker) {
		return newError(ErrorCodeUnexpectedPage,
			fmt.Errorf("login page marker not found, got %q", pageTitle))
	}

	err = c.run(ctx,
		chromedp.SendKeys(selUsername, creds.Username, chromedp.ByQuery),
		chromedp.SendKeys(selPassword, creds.Password, chromedp.ByQuery),
		chromedp.Click(selLoginSubmit, chromedp.ByQuery),
		// Lectio is slow to redirect after login
		chromedp.Sleep(5*time.Second),
	)
	if err != nil {
		return err
	}

	var title string
	if err := c.run(ctx, chromedp.Title(&title)); err != nil {
		return err
	}

	// the main page title carries the logged-in username; a title without
	// it means we are still on (or back at) the login form
	if !strings.Contains(title, creds.Username) {
		return newError(ErrorCodeAuthFailed,
			fmt.Errorf("expected %q in page title, got %q", creds.Username, title))
	}

	return nil
}

func (c *chromeClient) openCompose(ctx context.Context, portalID string) error {
	messagesURL := fmt.Sprintf("%s/lectio/%s/beskeder2.aspx", c.cfg.BaseURL, portalID)

	err := c.run(ctx,
		chromedp.Navigate(messagesURL),
		chromedp.WaitVisible(selNewMessage, chromedp.ByQuery),
		chromedp.Click(selNewMessage, chromedp.ByQuery),
		chromedp.WaitVisible(selRecipient, chromedp.ByQuery),
	)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) && pe.Code == ErrorCodeTimeout {
			return newError(ErrorCodeUnexpectedPage, pe.Err)
		}
		return err
	}

	return nil
}

func (c *chromeClient) compose(ctx context.Context, msg Message) error {
	err := c.run(ctx,
		chromedp.Click(selRecipient, chromedp.ByQuery),
		chromedp.SendKeys(selRecipient, msg.Recipient, chromedp.ByQuery),
		// the recipient dropdown populates from an async lookup
		chromedp.Sleep(2*time.Second),
		chromedp.Click(suggestionSelector(msg.Recipient), chromedp.BySearch),
	)
	if err != nil {
		return err
	}

	actions := []chromedp.Action{
		chromedp.SendKeys(selSubject, msg.Subject, chromedp.ByQuery),
		chromedp.SendKeys(selBody, msg.Body, chromedp.ByQuery),
	}
	if !msg.AllowReply {
		actions = append(actions, chromedp.Click(selNoReplyCheck, chromedp.ByQuery))
	}

	return c.run(ctx, actions...)
}

func (c *chromeClient) submit(ctx context.Context) error {
	err := c.run(ctx,
		chromedp.Click(selSendButton, chromedp.ByQuery),
		chromedp.WaitVisible(selSentMarker, chromedp.ByQuery),
	)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) && pe.Code == ErrorCodeTimeout {
			return newError(ErrorCodeUnexpectedPage,
				fmt.Errorf("sent indicator never appeared: %w", pe.Err))
		}
		return err
	}

	return nil
}

// run executes one step of the flow under the configured step timeout.
func (c *chromeClient) run(ctx context.Context, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(ctx, c.cfg.StepTimeout)
	defer cancel()

	if err := chromedp.Run(stepCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return newError(ErrorCodeTimeout, err)
		}
		return newError(ErrorCodeBrowser, err)
	}

	return nil
}

// suggestionSelector matches the dropdown entry carrying the recipient's
// name, the same way a user would click the suggested match.
func suggestionSelector(recipient string) string {
	return fmt.Sprintf(`//span[contains(text(), %q)]`, recipient)
}
