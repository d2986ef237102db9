package craps

// RulesSummary is a short player-facing description of the bets this engine
// accepts and how they pay.
const RulesSummary = `Pass Line (come-out only)
  Come-out: 7 or 11 wins 1:1, 2, 3 or 12 loses, anything else sets the point.
  Point on: the point wins 1:1, 7 loses.
Don't Pass (come-out only)
  Come-out: 2 or 3 wins 1:1, 12 pushes, 7 or 11 loses.
  Point on: 7 wins 1:1, the point loses.
Come / Don't Come (point on only)
  Like Pass / Don't Pass, with the next roll as the bet's own come-out.
Odds (behind pass, don't pass, come, don't come)
  Limit 3x on 4/10, 4x on 5/9, 5x on 6/8.
  Pass/come odds pay 2:1, 3:2, 6:5. Don't odds pay 1:2, 2:3, 5:6.
Place 4-10: pay 9:5 on 4/10, 7:5 on 5/9, 7:6 on 6/8. Off on the come-out, lose on seven-out.
Hardways: hard 4/10 pay 7:1, hard 6/8 pay 9:1. Lose on the easy way or any 7.
Big 6 / Big 8: pay 1:1, lose on any 7.
Field (one roll): 3, 4, 9, 10, 11 pay 1:1, 2 and 12 pay 2:1.
Propositions (one roll): any seven 4:1, any craps 7:1, aces 30:1, ace-deuce 15:1, yo 15:1, boxcars 30:1.
`
