package enums

type ReferralSource string

const (
	ReferralSourceTikTok    ReferralSource = "TikTok"
	ReferralSourceYouTube   ReferralSource = "YouTube"
	ReferralSourceInstagram ReferralSource = "Instagram"
	ReferralSourceGoogle    ReferralSource = "Google"
	ReferralSourcePlayStore ReferralSource = "Play Store"
	ReferralSourceFacebook  ReferralSource = "Facebook"
	ReferralSourceOther     ReferralSource = "Other"
)
