package order

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOTPRequired is returned before any network call when no OTP was given.
	ErrOTPRequired = errs.NewValueIsRequiredError("otp")

	// ErrOTPLocked is returned while the order is locked out after too many
	// rejected OTP submissions.
	ErrOTPLocked = errors.New("too many failed OTP attempts, try again later")
)

// OTPLength is the number of digits of a delivery OTP.
const OTPLength = 6

// MaxSignedInvoiceSize caps the signed invoice upload.
const MaxSignedInvoiceSize = 10 << 20

// DeliveryMethod tells how a delivery was confirmed.
type DeliveryMethod string

const (
	DeliveryByOTP           DeliveryMethod = "otp"
	DeliveryBySignedInvoice DeliveryMethod = "signed_invoice"
)

// DeliveryConfirmation is the proof offered for a delivery. It is either an
// OTPConfirmation or a SignedInvoiceConfirmation.
type DeliveryConfirmation interface {
	Method() DeliveryMethod
}

// OTPConfirmation holds the code read out by the customer.
type OTPConfirmation struct {
	code string
}

// NewOTPConfirmation trims code and checks it is exactly six digits.
func NewOTPConfirmation(code string) (OTPConfirmation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return OTPConfirmation{}, ErrOTPRequired
	}
	if len(code) != OTPLength || strings.TrimLeft(code, "0123456789") != "" {
		return OTPConfirmation{}, errs.NewValueIsInvalidErrorWithCause("otp",
			fmt.Errorf("must be %d digits", OTPLength))
	}
	return OTPConfirmation{code: code}, nil
}

func (OTPConfirmation) Method() DeliveryMethod {
	return DeliveryByOTP
}

func (o OTPConfirmation) Code() string {
	return o.code
}

// SignedInvoiceConfirmation is a photo or scan of the invoice signed by the customer.
type SignedInvoiceConfirmation struct {
	fileName    string
	contentType string
	content     []byte
}

// NewSignedInvoiceConfirmation accepts images and PDFs up to MaxSignedInvoiceSize.
// An empty contentType is sniffed from the content.
func NewSignedInvoiceConfirmation(fileName, contentType string, content []byte) (SignedInvoiceConfirmation, error) {
	fileName = filepath.Base(strings.TrimSpace(fileName))
	var problems []error
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		problems = append(problems, errs.NewValueIsRequiredError("fileName"))
	}
	if len(content) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("signedInvoice"))
	} else if len(content) > MaxSignedInvoiceSize {
		problems = append(problems, errs.NewValueIsOutOfRangeError("signedInvoice", len(content), 1, MaxSignedInvoiceSize))
	}
	if err := errors.Join(problems...); err != nil {
		return SignedInvoiceConfirmation{}, err
	}

	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "application/pdf") {
		return SignedInvoiceConfirmation{}, errs.NewValueIsInvalidErrorWithCause("signedInvoice",
			fmt.Errorf("%s is not an image or pdf", contentType))
	}

	return SignedInvoiceConfirmation{
		fileName:    fileName,
		contentType: contentType,
		content:     content,
	}, nil
}

func (SignedInvoiceConfirmation) Method() DeliveryMethod {
	return DeliveryBySignedInvoice
}

func (s SignedInvoiceConfirmation) FileName() string {
	return s.fileName
}

func (s SignedInvoiceConfirmation) ContentType() string {
	return s.contentType
}

func (s SignedInvoiceConfirmation) Content() []byte {
	return s.content
}
